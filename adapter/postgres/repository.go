package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	sqlbuilder "github.com/huandu/go-sqlbuilder"
	log "github.com/sirupsen/logrus"

	"gator/domain"
)

type Repository struct{ db *sql.DB }

var _ domain.Store = (*Repository)(nil)

func New(db *sql.DB) *Repository { return &Repository{db: db} }

var (
	userColumns   = []string{"id", "created_at", "updated_at", "name"}
	feedColumns   = []string{"id", "created_at", "updated_at", "name", "url", "user_id"}
	followColumns = []string{
		"ff.id", "ff.created_at", "ff.updated_at", "ff.user_id", "ff.feed_id",
		"f.name", "f.url", "u.name",
	}
)

func (r *Repository) InsertUser(ctx context.Context, name string) (domain.User, error) {
	query, args := insertUserQuery(uuid.NewString(), name)
	return scanUser(r.db.QueryRowContext(ctx, query, args...))
}

func (r *Repository) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	query, args := selectUserQuery("name", name)
	return scanUser(r.db.QueryRowContext(ctx, query, args...))
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	query, args := selectUserQuery("id", id)
	return scanUser(r.db.QueryRowContext(ctx, query, args...))
}

func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(userColumns...).From("users").OrderBy("created_at").Asc()
	query, args := sb.Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Name); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// DeleteAllUsers removes every user; feeds and follows go with them through ON DELETE CASCADE.
func (r *Repository) DeleteAllUsers(ctx context.Context) error {
	query, args := sqlbuilder.PostgreSQL.NewDeleteBuilder().DeleteFrom("users").Build()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil {
		log.WithField("users", n).Debug("Deleted all users")
	}
	return nil
}

func (r *Repository) InsertFeed(ctx context.Context, name, url, userID string) (domain.Feed, error) {
	query, args := insertFeedQuery(uuid.NewString(), name, url, userID)
	return scanFeed(r.db.QueryRowContext(ctx, query, args...))
}

func (r *Repository) GetFeedByURL(ctx context.Context, url string) (domain.Feed, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(feedColumns...).From("feeds").Where(sb.Equal("url", url))
	query, args := sb.Build()
	return scanFeed(r.db.QueryRowContext(ctx, query, args...))
}

func (r *Repository) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(feedColumns...).From("feeds").OrderBy("created_at").Asc()
	query, args := sb.Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []domain.Feed
	for rows.Next() {
		var f domain.Feed
		if err := rows.Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt, &f.Name, &f.URL, &f.UserID); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// DeleteFeed removes a feed; its follows go with it through ON DELETE CASCADE.
func (r *Repository) DeleteFeed(ctx context.Context, id string) error {
	query, args := deleteFeedQuery(id)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return translate(err)
	}
	log.WithField("feed_id", id).Debug("Deleted feed")
	return nil
}

// InsertFeedFollow relies on the (user_id, feed_id) unique constraint, so a concurrent
// duplicate insert surfaces as domain.ErrAlreadyFollowing rather than a second row.
func (r *Repository) InsertFeedFollow(ctx context.Context, userID, feedID string) (domain.FeedFollowDetail, error) {
	id := uuid.NewString()

	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto("feed_follows").Cols("id", "user_id", "feed_id").Values(id, userID, feedID)
	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return domain.FeedFollowDetail{}, translate(err)
	}

	query, args = selectFollowsQuery("ff.id", id)
	row := r.db.QueryRowContext(ctx, query, args...)

	var d domain.FeedFollowDetail
	if err := scanFollow(row, &d); err != nil {
		return domain.FeedFollowDetail{}, translate(err)
	}
	return d, nil
}

func (r *Repository) DeleteFeedFollow(ctx context.Context, userID, feedID string) error {
	query, args := deleteFollowQuery(userID, feedID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil {
		log.WithFields(log.Fields{
			"user_id": userID,
			"feed_id": feedID,
			"deleted": n,
		}).Debug("Deleted feed follow")
	}
	return nil
}

func (r *Repository) ListFeedFollowsForUser(ctx context.Context, userID string) ([]domain.FeedFollowDetail, error) {
	query, args := selectFollowsQuery("ff.user_id", userID)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []domain.FeedFollowDetail
	for rows.Next() {
		var d domain.FeedFollowDetail
		if err := scanFollow(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func insertUserQuery(id, name string) (string, []interface{}) {
	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto("users").Cols("id", "name").Values(id, name)
	ib.SQL("RETURNING " + strings.Join(userColumns, ", "))
	return ib.Build()
}

func selectUserQuery(column string, value string) (string, []interface{}) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(userColumns...).From("users").Where(sb.Equal(column, value))
	return sb.Build()
}

func insertFeedQuery(id, name, url, userID string) (string, []interface{}) {
	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto("feeds").Cols("id", "name", "url", "user_id").Values(id, name, url, userID)
	ib.SQL("RETURNING " + strings.Join(feedColumns, ", "))
	return ib.Build()
}

func deleteFeedQuery(id string) (string, []interface{}) {
	db := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	db.DeleteFrom("feeds").Where(db.Equal("id", id))
	return db.Build()
}

func selectFollowsQuery(column string, value string) (string, []interface{}) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(followColumns...).
		From("feed_follows ff").
		Join("feeds f", "ff.feed_id = f.id").
		Join("users u", "ff.user_id = u.id").
		Where(sb.Equal(column, value)).
		OrderBy("ff.created_at").Asc()
	return sb.Build()
}

func deleteFollowQuery(userID, feedID string) (string, []interface{}) {
	db := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	db.DeleteFrom("feed_follows").Where(db.Equal("user_id", userID), db.Equal("feed_id", feedID))
	return db.Build()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Name); err != nil {
		return domain.User{}, translate(err)
	}
	return u, nil
}

func scanFeed(row scanner) (domain.Feed, error) {
	var f domain.Feed
	if err := row.Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt, &f.Name, &f.URL, &f.UserID); err != nil {
		return domain.Feed{}, translate(err)
	}
	return f, nil
}

func scanFollow(row scanner, d *domain.FeedFollowDetail) error {
	return row.Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt, &d.UserID, &d.FeedID, &d.FeedName, &d.FeedURL, &d.UserName)
}
