package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestID(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want ID
	}{
		{name: "string", in: `"abc"`, want: "abc"},
		{name: "integer", in: `1700000000000`, want: "1700000000000"},
		{name: "small integer", in: `3`, want: "3"},
		{name: "null", in: `null`, want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.want {
				t.Errorf("expected %q, got %q", tt.want, id)
			}
		})
	}

	t.Run("rejects objects", func(t *testing.T) {
		var id ID
		if err := json.Unmarshal([]byte(`{"x":1}`), &id); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("encodes as string", func(t *testing.T) {
		data, err := json.Marshal(Genre{ID: NewID(1), Name: "Pop"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"id":"1","name":"Pop"}` {
			t.Errorf("unexpected encoding %s", data)
		}
	})
}

func TestTimestamp(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "iso", in: `"2024-03-01T10:00:00.000Z"`, want: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{name: "epoch ms", in: `1709287200000`, want: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{name: "garbage", in: `"yesterday"`, want: time.Time{}},
		{name: "null", in: `null`, want: time.Time{}},
		{name: "object", in: `{}`, want: time.Time{}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.in), &ts); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ts.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, ts.Time)
			}
		})
	}
}

func TestDefaultGenres(t *testing.T) {
	genres := DefaultGenres()
	if len(genres) != 10 {
		t.Fatalf("expected 10 genres, got %d", len(genres))
	}
	if genres[0].ID != "1" || genres[0].Name != "Pop" {
		t.Errorf("unexpected first genre %+v", genres[0])
	}
	if genres[9].ID != "10" || genres[9].Name != "Other" {
		t.Errorf("unexpected last genre %+v", genres[9])
	}
	for _, g := range genres {
		if err := g.Validate(); err != nil {
			t.Errorf("default genre %s invalid: %v", g.Name, err)
		}
	}
}

func TestLyric(t *testing.T) {
	valid := Lyric{ID: "1", Title: "T", Artist: "A", Content: "C", GenreID: "2"}

	t.Run("Validate", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("expected valid lyric, got %v", err)
		}

		noGenre := valid
		noGenre.GenreID = ""
		var verr *ValidationError
		if err := noGenre.Validate(); !errors.As(err, &verr) || verr.Field != "genreId" {
			t.Errorf("expected genreId validation error, got %v", err)
		}

		blank := valid
		blank.Title = "   "
		if err := blank.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("ShareText", func(t *testing.T) {
		l := Lyric{Title: "Song", Artist: "Band", Content: "la la"}
		if got := l.ShareText(); got != "Song by Band\n\nla la" {
			t.Errorf("unexpected share text %q", got)
		}
	})

	t.Run("decodes legacy numeric ids", func(t *testing.T) {
		var l Lyric
		data := `{"id":1700000000000,"title":"T","artist":"A","content":"C","genreId":3,"date":"2024-01-02T03:04:05.000Z"}`
		if err := json.Unmarshal([]byte(data), &l); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l.ID != "1700000000000" || l.GenreID != "3" {
			t.Errorf("unexpected ids %q %q", l.ID, l.GenreID)
		}
		if l.Date.Year() != 2024 {
			t.Errorf("expected date to parse, got %v", l.Date)
		}
	})
}

func TestPlaylist(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	t.Run("AddLyric", func(t *testing.T) {
		p := NewPlaylist("p1", "Mine", now)
		if err := p.AddLyric("a", later); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.UpdatedAt.Equal(later) {
			t.Errorf("expected updatedAt to be bumped")
		}
		if len(p.LyricsIDs) != 1 || p.LyricsIDs[0] != "a" {
			t.Errorf("unexpected lyricsIds %v", p.LyricsIDs)
		}
	})

	t.Run("AddLyric duplicate", func(t *testing.T) {
		p := NewPlaylist("p1", "Mine", now)
		_ = p.AddLyric("a", now)
		err := p.AddLyric("a", later)
		if !errors.Is(err, ErrDuplicateMembership) {
			t.Fatalf("expected ErrDuplicateMembership, got %v", err)
		}
		if len(p.LyricsIDs) != 1 {
			t.Errorf("expected lyricsIds unchanged, got %v", p.LyricsIDs)
		}
		if !p.UpdatedAt.Equal(now) {
			t.Errorf("expected updatedAt unchanged, got %v", p.UpdatedAt)
		}
	})

	t.Run("RemoveLyric", func(t *testing.T) {
		p := NewPlaylist("p1", "Mine", now)
		_ = p.AddLyric("a", now)
		if p.RemoveLyric("zzz", later) {
			t.Error("removing a non-member should report false")
		}
		if !p.UpdatedAt.Equal(now) {
			t.Error("updatedAt should not change when nothing was removed")
		}
		if !p.RemoveLyric("a", later) || len(p.LyricsIDs) != 0 {
			t.Errorf("expected a to be removed, got %v", p.LyricsIDs)
		}
	})

	t.Run("SamplePlaylist", func(t *testing.T) {
		p := SamplePlaylist(now)
		if p.Name != "My First Playlist" {
			t.Errorf("unexpected name %q", p.Name)
		}
		if string(p.ID) != "sample-1735732800000" {
			t.Errorf("unexpected id %q", p.ID)
		}
	})

	t.Run("lenient decode and Normalize", func(t *testing.T) {
		var p Playlist
		data := `{"name":"","lyricsIds":"oops","createdAt":"not a date","color":"red"}`
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Normalize(now, func() ID { return "minted" }) {
			t.Error("expected Normalize to report a minted id")
		}

		if p.ID != "minted" {
			t.Errorf("expected minted id, got %q", p.ID)
		}
		if p.Name != UntitledPlaylist {
			t.Errorf("expected %q, got %q", UntitledPlaylist, p.Name)
		}
		if p.LyricsIDs == nil || len(p.LyricsIDs) != 0 {
			t.Errorf("expected empty lyricsIds, got %v", p.LyricsIDs)
		}
		if !p.CreatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
			t.Errorf("expected timestamps set to now, got %v %v", p.CreatedAt, p.UpdatedAt)
		}

		out, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var back map[string]any
		_ = json.Unmarshal(out, &back)
		if back["color"] != "red" {
			t.Errorf("expected unrelated field to survive, got %v", back["color"])
		}
	})

	t.Run("decode keeps lyricsIds as stored", func(t *testing.T) {
		var p Playlist
		data := `{"id":"p","name":"Mix","lyricsIds":["a","a","",3,{"x":1}]}`
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []ID{"a", "a", "", "3"}
		if len(p.LyricsIDs) != len(want) {
			t.Fatalf("expected %v, got %v", want, p.LyricsIDs)
		}
		for i := range want {
			if p.LyricsIDs[i] != want[i] {
				t.Errorf("lyricsIds[%d] = %q, want %q", i, p.LyricsIDs[i], want[i])
			}
		}
		if p.Normalize(now, func() ID { return "minted" }) {
			t.Error("expected no id to be minted")
		}
	})

	t.Run("Normalize keeps good fields", func(t *testing.T) {
		var p Playlist
		data := `{"id":42,"name":"Road","lyricsIds":[1,"2"],"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-02T00:00:00Z"}`
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p.Normalize(now, func() ID { return "minted" })
		if p.ID != "42" || p.Name != "Road" {
			t.Errorf("unexpected playlist %+v", p)
		}
		if len(p.LyricsIDs) != 2 || p.LyricsIDs[0] != "1" || p.LyricsIDs[1] != "2" {
			t.Errorf("unexpected lyricsIds %v", p.LyricsIDs)
		}
		if p.UpdatedAt.Year() != 2024 {
			t.Errorf("expected stored updatedAt to be kept")
		}
	})
}

func TestLyricTags(t *testing.T) {
	lt := LyricTags{}
	if !lt.Assign("l1", "t1") || lt.Assign("l1", "t1") {
		t.Error("Assign should report change only the first time")
	}
	lt.Assign("l2", "t1")
	lt.Assign("l2", "t2")

	if n := lt.DropTag("t1"); n != 2 {
		t.Errorf("expected 2 assignments removed, got %d", n)
	}
	if _, ok := lt["l1"]; ok {
		t.Error("expected empty entry to be dropped")
	}
	if len(lt["l2"]) != 1 || lt["l2"][0] != "t2" {
		t.Errorf("unexpected l2 tags %v", lt["l2"])
	}
}

func TestPreferences(t *testing.T) {
	p := DefaultPreferences()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	tc := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{"font size", "fontSize", "20", false},
		{"font size not int", "fontSize", "big", true},
		{"font size out of range", "fontSize", "200", true},
		{"chords", "showChords", "false", false},
		{"alignment", "alignment", "Center", false},
		{"bad alignment", "alignment", "justify", true},
		{"unknown", "color", "red", true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.With(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("With(%s, %s) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestTheme(t *testing.T) {
	if th, err := ParseTheme(" Dark "); err != nil || th != ThemeDark {
		t.Errorf("expected dark, got %v %v", th, err)
	}
	if _, err := ParseTheme("blue"); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("expected ErrInvalidTheme, got %v", err)
	}
	if ThemeLight.Toggled() != ThemeDark || ThemeDark.Toggled() != ThemeLight {
		t.Error("Toggled should flip the theme")
	}
}
