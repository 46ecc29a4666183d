package render

import "strings"

// Genre is the accent category of a program, derived from its major genre.
type Genre string

const (
	GenreNews        Genre = "news"
	GenreSports      Genre = "sports"
	GenreInformation Genre = "information"
	GenreDrama       Genre = "drama"
	GenreMusic       Genre = "music"
	GenreVariety     Genre = "variety"
	GenreMovies      Genre = "movies"
	GenreAnime       Genre = "anime"
	GenreDocumentary Genre = "documentary"
	GenreTheatre     Genre = "theatre"
	GenreHobby       Genre = "hobby"
	GenreWelfare     Genre = "welfare"
	GenreOther       Genre = "other"
)

// AllGenres lists every genre in display order.
func AllGenres() []Genre {
	return []Genre{
		GenreNews, GenreSports, GenreInformation, GenreDrama, GenreMusic,
		GenreVariety, GenreMovies, GenreAnime, GenreDocumentary, GenreTheatre,
		GenreHobby, GenreWelfare, GenreOther,
	}
}

// ARIB major genre names as sent by Japanese broadcasters.
var majorGenres = map[string]Genre{
	"ニュース・報道":     GenreNews,
	"スポーツ":        GenreSports,
	"情報・ワイドショー":   GenreInformation,
	"ドラマ":         GenreDrama,
	"音楽":          GenreMusic,
	"バラエティ":       GenreVariety,
	"映画":          GenreMovies,
	"アニメ・特撮":      GenreAnime,
	"ドキュメンタリー・教養": GenreDocumentary,
	"劇場・公演":       GenreTheatre,
	"趣味・教育":       GenreHobby,
	"福祉":          GenreWelfare,
}

// GenreOf maps a major genre name to its accent genre. English category names
// are accepted too.
func GenreOf(major string) Genre {
	if g, ok := majorGenres[major]; ok {
		return g
	}
	key := Genre(strings.ToLower(strings.TrimSpace(major)))
	for _, g := range AllGenres() {
		if g == key {
			return g
		}
	}
	return GenreOther
}
