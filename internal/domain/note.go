package domain

import (
	"strings"
	"time"
)

type Note struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Category  TaskCategory `json:"category"`
	Tags      []string     `json:"tags"`
}

func (n Note) Clone() Note {
	c := n
	c.Tags = append([]string{}, n.Tags...)
	return c
}

// NoteDraft is the payload for creating a note. Timestamps are assigned by
// the store.
type NoteDraft struct {
	Title    string
	Content  string
	Category TaskCategory
	Tags     []string
}

func (d NoteDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return invalid("title", "title is required")
	}
	if d.Category != "" && !ValidCategories[d.Category] {
		return invalid("category", "unknown category %q", d.Category)
	}
	return nil
}

// Build turns the draft into a note stamped with now for both timestamps.
func (d NoteDraft) Build(id string, now time.Time) Note {
	return Note{
		ID:        id,
		Title:     strings.TrimSpace(d.Title),
		Content:   d.Content,
		CreatedAt: now,
		UpdatedAt: now,
		Category:  TaskCategory(CoalesceStr(string(d.Category), string(CategoryAcademic))),
		Tags:      NormalizeTags(d.Tags),
	}
}

type NotePatch struct {
	Title    *string
	Content  *string
	Category *TaskCategory
	Tags     *[]string
}

func (p NotePatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("title", "title is required")
	}
	if p.Category != nil && !ValidCategories[*p.Category] {
		return invalid("category", "unknown category %q", *p.Category)
	}
	return nil
}

// Apply merges the patch into n and refreshes UpdatedAt, even for an empty
// patch. UpdatedAt never moves backwards.
func (p NotePatch) Apply(n *Note, now time.Time) {
	if p.Title != nil {
		n.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Tags != nil {
		n.Tags = NormalizeTags(*p.Tags)
	}
	if now.After(n.UpdatedAt) {
		n.UpdatedAt = now
	}
}
