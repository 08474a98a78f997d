// Package seed loads the bundled example dataset into a repository set.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"photoshare/internal/logging"
	"photoshare/internal/model"
	"photoshare/internal/repository"
	"photoshare/internal/service"
)

// DefaultPassword is given to every seeded user.
const DefaultPassword = "weak"

//go:embed fixtures.json
var fixtures []byte

// Dataset is the example data. Ids are local to the file and are replaced by
// real identifiers on load.
type Dataset struct {
	Users  []UserFixture  `json:"users"`
	Photos []PhotoFixture `json:"photos"`
}

// UserFixture is one example user.
type UserFixture struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Occupation  string `json:"occupation"`
}

// PhotoFixture is one example photo with its comments.
type PhotoFixture struct {
	FileName string           `json:"file_name"`
	DateTime time.Time        `json:"date_time"`
	UserID   string           `json:"user_id"`
	Comments []CommentFixture `json:"comments"`
}

// CommentFixture is one example comment.
type CommentFixture struct {
	Comment  string    `json:"comment"`
	DateTime time.Time `json:"date_time"`
	UserID   string    `json:"user_id"`
}

// Result summarises a load.
type Result struct {
	Users    int
	Photos   int
	Comments int
	Version  string
}

// Bundled returns the embedded dataset.
func Bundled() (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(fixtures, &ds); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &ds, nil
}

// Load discards everything in repos and loads ds. Users are registered through
// the credential store so their passwords are hashed like any other account.
func Load(ctx context.Context, repos *repository.Set, ds *Dataset, log logging.Logger) (*Result, error) {
	if err := repos.Photos.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear photos: %w", err)
	}
	if err := repos.Users.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear users: %w", err)
	}
	if err := repos.SchemaInfo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear schema info: %w", err)
	}

	users := service.NewUserService(repos.Users, nil)
	ids := make(map[string]uuid.UUID, len(ds.Users))
	res := &Result{}

	for _, u := range ds.Users {
		user, err := users.Register(ctx, service.RegisterInput{
			LoginName:   strings.ToLower(u.LastName),
			Password:    DefaultPassword,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Location:    u.Location,
			Description: u.Description,
			Occupation:  u.Occupation,
		})
		if err != nil {
			return nil, fmt.Errorf("register %s %s: %w", u.FirstName, u.LastName, err)
		}
		ids[u.ID] = user.ID
		res.Users++
		log.Info(ctx, "added user", "name", u.FirstName+" "+u.LastName, "user_id", user.ID)
	}

	for _, p := range ds.Photos {
		owner, ok := ids[p.UserID]
		if !ok {
			log.Warn(ctx, "skipping photo with unknown owner", "file_name", p.FileName, "owner", p.UserID)
			continue
		}

		photo := &model.Photo{
			ID:       uuid.New(),
			UserID:   owner,
			FileName: p.FileName,
			DateTime: p.DateTime,
			Comments: make([]model.Comment, 0, len(p.Comments)),
		}
		for _, c := range p.Comments {
			author, ok := ids[c.UserID]
			if !ok {
				log.Warn(ctx, "skipping comment with unknown author", "file_name", p.FileName, "author", c.UserID)
				continue
			}
			photo.Comments = append(photo.Comments, model.Comment{
				ID:       uuid.New(),
				PhotoID:  photo.ID,
				Comment:  c.Comment,
				DateTime: c.DateTime,
				UserID:   author,
			})
		}

		if err := repos.Photos.Create(ctx, photo); err != nil {
			return nil, fmt.Errorf("create photo %s: %w", p.FileName, err)
		}
		res.Photos++
		res.Comments += len(photo.Comments)
		log.Info(ctx, "added photo", "file_name", p.FileName, "user_id", owner, "comments", len(photo.Comments))
	}

	info, err := service.NewInfoService(repos).RecordSchema(ctx, service.SchemaVersion)
	if err != nil {
		return nil, err
	}
	res.Version = info.Version
	log.Info(ctx, "schema info created", "version", info.Version)

	return res, nil
}
