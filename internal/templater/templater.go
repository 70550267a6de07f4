package templater

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mangasio/internal/domain"
	"mangasio/internal/utils"
)

var templatePattern = regexp.MustCompile(`{((\w+?)(:.*?)?)}`)

type Templater struct {
	Infos domain.BookInfos
}

func New(infos domain.BookInfos) *Templater {
	return &Templater{
		Infos: infos,
	}
}

func (t *Templater) handleNum(options string) string {
	number, err := strconv.ParseFloat(t.Infos.Chapter, 64)
	if err != nil {
		return t.Infos.Chapter
	}

	if options == "" {
		return fmt.Sprintf("%g", number)
	}

	length, _ := strconv.ParseInt(strings.ReplaceAll(options, ":", ""), 10, 32)
	return utils.PadFloat(number, int(length))
}

// handleText fills the <.> placeholder of options with value, or drops the
// whole variable when value is empty
func handleText(value, options string) string {
	if value == "" {
		return ""
	}

	if options == "" {
		return value
	}

	cleanString := strings.Replace(options, ":", "", 1)
	return strings.ReplaceAll(cleanString, "<.>", value)
}

func (t *Templater) ExecTemplate(template string) string {
	newString := template
	for _, match := range templatePattern.FindAllStringSubmatch(template, -1) {
		replace := match[0]

		varName := match[2]
		options := match[3]
		switch varName {
		case "num":
			replace = t.handleNum(options)
		case "manga":
			replace = handleText(t.Infos.Title, options)
		case "title":
			replace = handleText(t.Infos.ChapterTitle, options)
		case "vol":
			replace = handleText(t.Infos.Volume, options)
		}

		newString = strings.Replace(newString, match[0], replace, 1)
	}

	return newString
}
