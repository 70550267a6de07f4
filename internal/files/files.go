package files

import (
	"archive/zip"
	"bufio"
	"encoding/xml"
	"image"
	_ "image/gif"  // needed to decode gif
	_ "image/jpeg" // needed to decode jpeg
	_ "image/png"  // needed to decode png
	"io"
	"os"
	"path/filepath"

	"mangasio/internal/domain"

	"github.com/go-pdf/fpdf"
	_ "golang.org/x/image/webp" // needed to decode webp
)

const comicInfoName = "ComicInfo.xml"

func IsValidLocation(location string) error {
	if _, err := os.Stat(location); err != nil {
		return err
	}

	return nil
}

// ComicInfo is the metadata document read by comic readers from a cbz.
type ComicInfo struct {
	XMLName     xml.Name    `xml:"ComicInfo"`
	Title       string      `xml:"Title,omitempty"`
	Series      string      `xml:"Series,omitempty"`
	Number      string      `xml:"Number,omitempty"`
	Volume      string      `xml:"Volume,omitempty"`
	Summary     string      `xml:"Summary,omitempty"`
	Writer      string      `xml:"Writer,omitempty"`
	Web         string      `xml:"Web,omitempty"`
	PageCount   int         `xml:"PageCount,omitempty"`
	LanguageISO string      `xml:"LanguageISO,omitempty"`
	Manga       string      `xml:"Manga,omitempty"`
	Pages       []ComicPage `xml:"Pages>Page,omitempty"`
}

type ComicPage struct {
	Image       int `xml:"Image,attr"`
	ImageWidth  int `xml:"ImageWidth,attr,omitempty"`
	ImageHeight int `xml:"ImageHeight,attr,omitempty"`
}

func NewComicInfo(infos domain.BookInfos, sourceURL string) ComicInfo {
	manga := "No"
	if infos.ReadDirection == domain.RightToLeft {
		manga = "YesAndRightToLeft"
	}

	return ComicInfo{
		Title:       infos.ChapterTitle,
		Series:      infos.Title,
		Number:      infos.Chapter,
		Volume:      infos.Volume,
		Summary:     infos.Description,
		Writer:      infos.Authors,
		Web:         sourceURL,
		LanguageISO: "fr",
		Manga:       manga,
	}
}

// CreateCbzArchive creates a zip archive named cbzPath holding every image of
// sourceDir in name order, followed by a ComicInfo.xml built from info.
func CreateCbzArchive(sourceDir, cbzPath string, info ComicInfo) error {
	if err := os.MkdirAll(filepath.Dir(cbzPath), os.ModePerm); err != nil {
		return err
	}

	images, err := listImages(sourceDir)
	if err != nil {
		return err
	}

	cbzFile, err := os.Create(cbzPath)
	if err != nil {
		return err
	}
	defer cbzFile.Close()

	writeBuf := bufio.NewWriter(cbzFile)
	zipWriter := zip.NewWriter(writeBuf)

	info.Pages = info.Pages[:0]
	for i, img := range images {
		if err := addFileToZip(zipWriter, img.path, filepath.Base(img.path)); err != nil {
			return err
		}

		info.Pages = append(info.Pages, ComicPage{
			Image:       i,
			ImageWidth:  img.width,
			ImageHeight: img.height,
		})
	}
	info.PageCount = len(images)

	if err := addComicInfo(zipWriter, info); err != nil {
		return err
	}

	if err := zipWriter.Close(); err != nil {
		return err
	}

	return writeBuf.Flush()
}

// CreatePDF creates a pdf file named pdfPath with one page per image of sourceDir
func CreatePDF(sourceDir, pdfPath string, info ComicInfo) error {
	if err := os.MkdirAll(filepath.Dir(pdfPath), os.ModePerm); err != nil {
		return err
	}

	images, err := listImages(sourceDir)
	if err != nil {
		return err
	}

	pdf := fpdf.New(fpdf.OrientationPortrait, fpdf.UnitMillimeter, "", "")
	pdf.SetTitle(info.Series+" "+info.Number, true)
	pdf.SetAuthor(info.Writer, true)

	for _, img := range images {
		pdfInfo := pdf.RegisterImageOptions(img.path, fpdf.ImageOptions{})
		if pdf.Err() {
			return pdf.Error()
		}
		imgWidth, imgHeight := pdfInfo.Extent()

		orientation := fpdf.OrientationPortrait
		if imgWidth > imgHeight {
			orientation = fpdf.OrientationLandscape
		}

		pdf.AddPageFormat(orientation, fpdf.SizeType{Wd: imgWidth, Ht: imgHeight})
		pdf.ImageOptions(img.path, 0, 0, imgWidth, imgHeight, false, fpdf.ImageOptions{}, 0, "")
	}

	return pdf.OutputFileAndClose(pdfPath)
}

type imageFile struct {
	path   string
	width  int
	height int
}

// listImages returns the decodable images of dir sorted by file name.
func listImages(dir string) ([]imageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []imageFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		cfg, err := decodeConfig(path)
		if err != nil {
			continue
		}

		images = append(images, imageFile{
			path:   path,
			width:  cfg.Width,
			height: cfg.Height,
		})
	}

	return images, nil
}

func decodeConfig(path string) (image.Config, error) {
	imgFile, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer imgFile.Close()

	cfg, _, err := image.DecodeConfig(bufio.NewReader(imgFile))
	return cfg, err
}

// addFileToZip adds a single file to the zip archive
func addFileToZip(zipWriter *zip.Writer, filePath, fileName string) error {
	fileToZip, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer fileToZip.Close()

	writer, err := zipWriter.Create(fileName)
	if err != nil {
		return err
	}

	readerBuf := bufio.NewReader(fileToZip)

	_, err = io.Copy(writer, readerBuf)
	return err
}

func addComicInfo(zipWriter *zip.Writer, info ComicInfo) error {
	writer, err := zipWriter.Create(comicInfoName)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(writer, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(writer)
	enc.Indent("", "  ")
	return enc.Encode(info)
}
