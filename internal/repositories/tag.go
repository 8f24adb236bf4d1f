package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
	"github.com/desertthunder/lyricbook/internal/store"
)

// TagRepository stores tags under [KeyTags] and their assignments under [KeyLyricTags].
type TagRepository struct {
	tags        base
	assignments base
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(s store.Store, logger *log.Logger) *TagRepository {
	return &TagRepository{
		tags:        newBase(s, logger, KeyTags, nil),
		assignments: newBase(s, logger, KeyLyricTags, nil),
	}
}

// List returns every tag
func (r *TagRepository) List(ctx context.Context) []models.Tag {
	tags, _ := readList[models.Tag](ctx, r.tags)
	return tags
}

// Read is [TagRepository.List] that reports an unreadable value as [ErrUnreadable].
func (r *TagRepository) Read(ctx context.Context) ([]models.Tag, error) {
	tags, state := readList[models.Tag](ctx, r.tags)
	return tags, r.tags.check(state)
}

// Save overwrites the stored tags
func (r *TagRepository) Save(ctx context.Context, tags []models.Tag) error {
	return r.tags.write(ctx, tags)
}

// Assignments returns the lyric to tag mapping, never nil
func (r *TagRepository) Assignments(ctx context.Context) models.LyricTags {
	lt := models.LyricTags{}
	if r.assignments.read(ctx, &lt) != stateFound || lt == nil {
		return models.LyricTags{}
	}
	return lt
}

// ReadAssignments is [TagRepository.Assignments] that reports an unreadable value as [ErrUnreadable].
func (r *TagRepository) ReadAssignments(ctx context.Context) (models.LyricTags, error) {
	lt := models.LyricTags{}
	state := r.assignments.read(ctx, &lt)
	if state != stateFound || lt == nil {
		lt = models.LyricTags{}
	}
	return lt, r.assignments.check(state)
}

// SaveAssignments overwrites the stored mapping
func (r *TagRepository) SaveAssignments(ctx context.Context, lt models.LyricTags) error {
	return r.assignments.write(ctx, lt)
}

// Add creates a tag named name. An existing tag with the same name, ignoring case, is returned instead.
func (r *TagRepository) Add(ctx context.Context, name string) (models.Tag, error) {
	name = strings.TrimSpace(name)
	tags := r.List(ctx)
	for _, t := range tags {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}

	tag := models.Tag{ID: mintID(), Name: name}
	if err := tag.Validate(); err != nil {
		return tag, err
	}
	return tag, r.Save(ctx, append(tags, tag))
}

// Delete removes tag id and every assignment of it.
func (r *TagRepository) Delete(ctx context.Context, id models.ID) error {
	remaining, removed := models.Without(r.List(ctx), id)
	if !removed {
		return fmt.Errorf("%w: %s", shared.ErrTagNotFound, id)
	}
	if err := r.Save(ctx, remaining); err != nil {
		return err
	}

	lt := r.Assignments(ctx)
	if lt.DropTag(id) > 0 {
		return r.SaveAssignments(ctx, lt)
	}
	return nil
}

// Assign tags lyricID with tag id
func (r *TagRepository) Assign(ctx context.Context, lyricID, id models.ID) error {
	if _, ok := models.Find(r.List(ctx), id); !ok {
		return fmt.Errorf("%w: %s", shared.ErrTagNotFound, id)
	}
	lt := r.Assignments(ctx)
	if !lt.Assign(lyricID, id) {
		return nil
	}
	return r.SaveAssignments(ctx, lt)
}

// Unassign removes tag id from lyricID, reporting whether it was assigned.
func (r *TagRepository) Unassign(ctx context.Context, lyricID, id models.ID) (bool, error) {
	lt := r.Assignments(ctx)
	if !lt.Unassign(lyricID, id) {
		return false, nil
	}
	return true, r.SaveAssignments(ctx, lt)
}

// For returns the tags assigned to lyricID, skipping tags that no longer exist.
func (r *TagRepository) For(ctx context.Context, lyricID models.ID) []models.Tag {
	tags := r.List(ctx)
	out := []models.Tag{}
	for _, id := range r.Assignments(ctx)[lyricID] {
		if t, ok := models.Find(tags, id); ok {
			out = append(out, t)
		}
	}
	return out
}
