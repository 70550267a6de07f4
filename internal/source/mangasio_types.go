package source

const readingChapterQuery = `query getReadingChapter($slug: String, $chapterNb: Float) {
  manga(slug: $slug) {
    _id
    title
    direction
    authors {
      name
      __typename
    }
    volumes {
      _id
      number
      description
      chapters {
        _id
        title
        number
        __typename
      }
      __typename
    }
    chapter(number: $chapterNb) {
      _id
      number
      title
      pageCount
      pages {
        _id
        number
        __typename
      }
      __typename
    }
    __typename
  }
}`

const pageByIDQuery = `query getPageById($id: ID!, $quality: PageType) {
  page(id: $id) {
    image(type: $quality) {
      url
    }
  }
}`

type graphqlRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type mangasioReadingChapter struct {
	Data *struct {
		Manga *mangasioManga `json:"manga"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type mangasioManga struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Direction string `json:"direction"`
	Authors   []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Volumes []mangasioVolume `json:"volumes"`
	Chapter *mangasioChapter `json:"chapter"`
}

type mangasioVolume struct {
	ID          string  `json:"_id"`
	Number      float64 `json:"number"`
	Description string  `json:"description"`
	Chapters    []struct {
		ID     string  `json:"_id"`
		Title  string  `json:"title"`
		Number float64 `json:"number"`
	} `json:"chapters"`
}

type mangasioChapter struct {
	ID        string  `json:"_id"`
	Number    float64 `json:"number"`
	Title     string  `json:"title"`
	PageCount int     `json:"pageCount"`
	Pages     []struct {
		ID     string `json:"_id"`
		Number int    `json:"number"`
	} `json:"pages"`
}

type mangasioPage struct {
	Data *struct {
		Page *struct {
			Image *struct {
				URL string `json:"url"`
			} `json:"image"`
		} `json:"page"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}
