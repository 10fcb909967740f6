package tmdb

import "github.com/mmcdole/reel/internal/domain"

// mapTvShow converts a title payload to a domain TV show
func mapTvShow(d titleDTO) *domain.TvShow {
	show := &domain.TvShow{
		Record:          domain.Record{ID: d.ID},
		Name:            d.Name,
		OriginalName:    d.OriginalName,
		Overview:        d.Overview,
		FirstAirDate:    d.FirstAirDate,
		Status:          d.Status,
		Genres:          mapGenres(d),
		NumberOfSeasons: d.NumberOfSeasons,
		VoteAverage:     d.VoteAverage,
		PosterPath:      d.PosterPath,
		BackdropPath:    d.BackdropPath,
	}
	// The API reports one runtime per episode format; the first is the usual one
	if len(d.EpisodeRunTime) > 0 {
		show.EpisodeRunTime = d.EpisodeRunTime[0]
	}
	return show
}

// mapMovie converts a title payload to a domain movie
func mapMovie(d titleDTO) *domain.Movie {
	return &domain.Movie{
		Record:        domain.Record{ID: d.ID},
		Title:         d.Title,
		OriginalTitle: d.OriginalTitle,
		Overview:      d.Overview,
		ReleaseDate:   d.ReleaseDate,
		Status:        d.Status,
		Genres:        mapGenres(d),
		Runtime:       d.Runtime,
		VoteAverage:   d.VoteAverage,
		PosterPath:    d.PosterPath,
		BackdropPath:  d.BackdropPath,
	}
}

// mapGenres prefers full genre objects (detail) over bare ids (listings)
func mapGenres(d titleDTO) []domain.Genre {
	if len(d.Genres) > 0 {
		genres := make([]domain.Genre, 0, len(d.Genres))
		for _, g := range d.Genres {
			genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
		}
		return genres
	}
	if len(d.GenreIDs) == 0 {
		return nil
	}
	genres := make([]domain.Genre, 0, len(d.GenreIDs))
	for _, id := range d.GenreIDs {
		genres = append(genres, domain.Genre{ID: id})
	}
	return genres
}

func mapPage[E any](d *pageDTO, mapTitle func(titleDTO) E) *domain.Page[E] {
	if d == nil {
		return nil
	}
	results := make([]E, 0, len(d.Results))
	for _, r := range d.Results {
		results = append(results, mapTitle(r))
	}
	return &domain.Page[E]{
		Page:         d.Page,
		TotalPages:   d.TotalPages,
		TotalResults: d.TotalResults,
		Results:      results,
	}
}

func mapReviewPage(d *reviewPageDTO) *domain.ReviewPage {
	if d == nil {
		return nil
	}
	reviews := make([]domain.Review, 0, len(d.Results))
	for _, r := range d.Results {
		reviews = append(reviews, domain.Review{
			ID:      r.ID,
			Author:  r.Author,
			Content: r.Content,
			URL:     r.URL,
		})
	}
	return &domain.ReviewPage{ID: d.ID, Page: d.Page, TotalPages: d.TotalPages, Results: reviews}
}

func mapVideoPage(d *videoPageDTO) *domain.VideoPage {
	if d == nil {
		return nil
	}
	videos := make([]domain.Video, 0, len(d.Results))
	for _, v := range d.Results {
		videos = append(videos, domain.Video{ID: v.ID, Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type})
	}
	return &domain.VideoPage{ID: d.ID, Results: videos}
}

func mapCredits(d *creditsDTO) *domain.Credits {
	if d == nil {
		return nil
	}
	credits := &domain.Credits{
		ID:   d.ID,
		Cast: make([]domain.Cast, 0, len(d.Cast)),
		Crew: make([]domain.Crew, 0, len(d.Crew)),
	}
	for _, c := range d.Cast {
		credits.Cast = append(credits.Cast, domain.Cast{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: c.ProfilePath,
			Order:       c.Order,
		})
	}
	for _, c := range d.Crew {
		credits.Crew = append(credits.Crew, domain.Crew{
			ID:          c.ID,
			Name:        c.Name,
			Job:         c.Job,
			Department:  c.Department,
			ProfilePath: c.ProfilePath,
		})
	}
	return credits
}
