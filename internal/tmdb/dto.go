package tmdb

// errorDTO is the body returned with non-200 responses
type errorDTO struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// titleDTO covers both movie and TV payloads. List endpoints fill the
// summary fields only; detail endpoints add genres, runtime and status.
type titleDTO struct {
	ID           int64      `json:"id"`
	Overview     string     `json:"overview"`
	PosterPath   string     `json:"poster_path"`
	BackdropPath string     `json:"backdrop_path"`
	VoteAverage  float64    `json:"vote_average"`
	GenreIDs     []int      `json:"genre_ids,omitempty"`
	Genres       []genreDTO `json:"genres,omitempty"`
	Status       string     `json:"status,omitempty"`

	// Movies
	Title         string `json:"title,omitempty"`
	OriginalTitle string `json:"original_title,omitempty"`
	ReleaseDate   string `json:"release_date,omitempty"`
	Runtime       int    `json:"runtime,omitempty"`

	// TV shows
	Name            string `json:"name,omitempty"`
	OriginalName    string `json:"original_name,omitempty"`
	FirstAirDate    string `json:"first_air_date,omitempty"`
	EpisodeRunTime  []int  `json:"episode_run_time,omitempty"`
	NumberOfSeasons int    `json:"number_of_seasons,omitempty"`
}

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// pageDTO is the paginated envelope of list, similar and search endpoints
type pageDTO struct {
	Page         int        `json:"page"`
	Results      []titleDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

type reviewPageDTO struct {
	ID         int64       `json:"id"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	Results    []reviewDTO `json:"results"`
}

type reviewDTO struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

type videoPageDTO struct {
	ID      int64      `json:"id"`
	Results []videoDTO `json:"results"`
}

type videoDTO struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type creditsDTO struct {
	ID   int64     `json:"id"`
	Cast []castDTO `json:"cast"`
	Crew []crewDTO `json:"crew"`
}

type castDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type crewDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}
