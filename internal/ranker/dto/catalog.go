package dto

// Catalog API (RAWG) response shapes. Field names follow the upstream JSON;
// dates are the upstream's YYYY-MM-DD strings, which compare correctly as
// plain strings.

// Game is a single catalog game record.
type Game struct {
	ID              int64             `json:"id"`
	Slug            string            `json:"slug"`
	Name            string            `json:"name"`
	Released        string            `json:"released"`
	BackgroundImage string            `json:"background_image"`
	Rating          float64           `json:"rating"`
	RatingsCount    int               `json:"ratings_count"`
	Metacritic      *int              `json:"metacritic"`
	Playtime        int               `json:"playtime"`
	Genres          []Genre           `json:"genres"`
	Platforms       []PlatformWrapper `json:"platforms"`
	Stores          []StoreWrapper    `json:"stores"`
	Tags            []Tag             `json:"tags"`
	Screenshots     []Screenshot      `json:"short_screenshots"`
	DescriptionRaw  string            `json:"description_raw,omitempty"`
	Developers      []Developer       `json:"developers,omitempty"`
	Publishers      []Publisher       `json:"publishers,omitempty"`
	ESRBRating      *ESRBRating       `json:"esrb_rating,omitempty"`
	TBA             bool              `json:"tba"`
}

// Genre is a catalog genre descriptor.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Platform is a catalog platform descriptor.
type Platform struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PlatformWrapper matches the catalog's nested platform entry.
type PlatformWrapper struct {
	Platform Platform `json:"platform"`
}

// Store is a catalog store descriptor.
type Store struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// StoreWrapper matches the catalog's nested store entry.
type StoreWrapper struct {
	Store Store `json:"store"`
}

// Tag is a catalog tag descriptor.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Screenshot is a catalog screenshot entry.
type Screenshot struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// Developer is a catalog developer descriptor.
type Developer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Publisher is a catalog publisher descriptor.
type Publisher struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ESRBRating is a catalog age rating descriptor.
type ESRBRating struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// GamesResponse is the catalog's paginated list envelope.
type GamesResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Game  `json:"results"`
}

// EmptyGamesResponse is the neutral value returned when an upstream call
// degrades; callers render an empty state instead of an error.
func EmptyGamesResponse() GamesResponse {
	return GamesResponse{Results: []Game{}}
}

// GameTrailer is a catalog movie/trailer entry.
type GameTrailer struct {
	ID      int64             `json:"id"`
	Name    string            `json:"name"`
	Preview string            `json:"preview"`
	Data    map[string]string `json:"data"`
}

// TrailersResponse is the catalog's trailer list envelope.
type TrailersResponse struct {
	Results []GameTrailer `json:"results"`
}

// ScreenshotsResponse is the catalog's screenshot list envelope.
type ScreenshotsResponse struct {
	Results []Screenshot `json:"results"`
}

// GenresResponse is the catalog's genre list envelope.
type GenresResponse struct {
	Results []Genre `json:"results"`
}

// PlatformsResponse is the catalog's platform list envelope.
type PlatformsResponse struct {
	Results []Platform `json:"results"`
}
