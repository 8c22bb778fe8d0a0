// Package portfolio implements the project showcase: the public
// portfolio pages and the admin CRUD behind them.
package portfolio

import "time"

// Project is a portfolio entry. Featured projects are surfaced on the
// landing page; SortOrder controls listing order (ascending, then newest
// first).
type Project struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	DescriptionHTML string    `json:"descriptionHtml"`
	Tech            []string  `json:"tech"`
	RepoURL         string    `json:"repoUrl"`
	LiveURL         string    `json:"liveUrl"`
	Featured        bool      `json:"featured"`
	SortOrder       int       `json:"sortOrder"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreateProjectRequest is the admin payload for creating a project.
type CreateProjectRequest struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	DescriptionHTML string   `json:"descriptionHtml"`
	Tech            []string `json:"tech"`
	RepoURL         string   `json:"repoUrl"`
	LiveURL         string   `json:"liveUrl"`
	Featured        bool     `json:"featured"`
	SortOrder       int      `json:"sortOrder"`
}

// UpdateProjectRequest is the admin payload for a partial update.
type UpdateProjectRequest struct {
	Title           *string   `json:"title"`
	Summary         *string   `json:"summary"`
	DescriptionHTML *string   `json:"descriptionHtml"`
	Tech            *[]string `json:"tech"`
	RepoURL         *string   `json:"repoUrl"`
	LiveURL         *string   `json:"liveUrl"`
	Featured        *bool     `json:"featured"`
	SortOrder       *int      `json:"sortOrder"`
}
