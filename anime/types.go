package anime

// Pagination is the paging block Jikan attaches to list endpoints.
type Pagination struct {
	LastVisiblePage int        `json:"last_visible_page"`
	HasNextPage     bool       `json:"has_next_page"`
	CurrentPage     int        `json:"current_page,omitempty"`
	Items           *PageItems `json:"items,omitempty"`
}

// PageItems counts the entries of a paginated search.
type PageItems struct {
	Count   int `json:"count"`
	Total   int `json:"total"`
	PerPage int `json:"per_page"`
}

// Title is one of the alternative titles of an anime.
type Title struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}

// Anime is the subset of the Jikan anime resource this package decodes.
type Anime struct {
	MalID         int     `json:"mal_id"`
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	TitleEnglish  string  `json:"title_english"`
	TitleJapanese string  `json:"title_japanese"`
	Titles        []Title `json:"titles"`
	Type          string  `json:"type"`
	Source        string  `json:"source"`
	Episodes      int     `json:"episodes"`
	Status        string  `json:"status"`
	Airing        bool    `json:"airing"`
	Duration      string  `json:"duration"`
	Rating        string  `json:"rating"`
	Score         float64 `json:"score"`
	ScoredBy      int     `json:"scored_by"`
	Rank          int     `json:"rank"`
	Popularity    int     `json:"popularity"`
	Synopsis      string  `json:"synopsis"`
	Season        string  `json:"season"`
	Year          int     `json:"year"`
}

// Episode is one entry of an anime's episode list.
type Episode struct {
	MalID         int     `json:"mal_id"`
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	TitleJapanese string  `json:"title_japanese"`
	TitleRomanji  string  `json:"title_romanji"`
	Aired         string  `json:"aired"`
	Score         float64 `json:"score"`
	Filler        bool    `json:"filler"`
	Recap         bool    `json:"recap"`
}

// Response wraps a single resource.
type Response[T any] struct {
	Data T `json:"data"`
}

// Page wraps a paginated list.
type Page[T any] struct {
	Pagination Pagination `json:"pagination"`
	Data       []T        `json:"data"`
}
