package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// Tags holds the metadata used to label a player.
type Tags struct {
	Title  string
	Artist string
	Album  string
}

// Label formats the tags as "Artist - Title", or whichever part is present.
func (t Tags) Label() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.Artist
	}
}

// ReadTags reads ID3v2 tags from MP3 files. Other formats yield empty tags.
func ReadTags(path string) (Tags, error) {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return Tags{}, nil
	}
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Tags{}, fmt.Errorf("audio: read tags %s: %w", path, err)
	}
	defer tag.Close()
	return Tags{
		Title:  strings.TrimSpace(tag.Title()),
		Artist: strings.TrimSpace(tag.Artist()),
		Album:  strings.TrimSpace(tag.Album()),
	}, nil
}
