package model

// Char is a single positioned glyph supplied by the page-extraction layer.
// Coordinates use the extractor's convention: Top grows downward, so a
// smaller Top means higher on the page.
type Char struct {
	Text   string  `json:"text"`
	X0     float64 `json:"x0"`
	X1     float64 `json:"x1"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Size   float64 `json:"size"`
}

// Page is one page of positioned characters plus its width in points.
type Page struct {
	Chars  []Char  `json:"chars"`
	Width  float64 `json:"width"`
	Number int     `json:"number"` // 1-based
}
