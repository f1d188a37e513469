package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pets-api/internal/domain/posts"
)

type PostsRepo struct {
	db *sql.DB
}

func NewPostsRepo(db *sql.DB) *PostsRepo {
	return &PostsRepo{db: db}
}

func (r *PostsRepo) Create(ctx context.Context, p posts.Post) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (id, pet_id, image_data, created_at)
		VALUES ($1,$2,$3,$4)
	`, p.ID, p.PetID, p.ImageData, p.CreatedAt)
	return err
}

func (r *PostsRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, image_data, created_at
		FROM posts
		WHERE id = $1
	`, id)

	var p posts.Post
	if err := row.Scan(&p.ID, &p.PetID, &p.ImageData, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return posts.Post{}, posts.ErrNotFound
		}
		return posts.Post{}, err
	}

	likes, err := r.loadLikes(ctx, p.ID)
	if err != nil {
		return posts.Post{}, err
	}
	p.Likes = likes
	return p, nil
}

func (r *PostsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// Toggle serializa por post con SELECT ... FOR UPDATE sobre la fila del
// post: dos toggles concurrentes del mismo par esperan turno y nunca
// aterrizan los dos como like, ni los dos como unlike.
func (r *PostsRepo) Toggle(ctx context.Context, postID, petID string) (bool, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var lockedID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM posts WHERE id = $1 FOR UPDATE`, postID,
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, 0, posts.ErrNotFound
		}
		return false, 0, err
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND pet_id = $2)`,
		postID, petID,
	).Scan(&exists)
	if err != nil {
		return false, 0, err
	}

	if exists {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM post_likes WHERE post_id = $1 AND pet_id = $2`, postID, petID)
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_likes (post_id, pet_id) VALUES ($1, $2)`, postID, petID)
	}
	if err != nil {
		return false, 0, err
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM post_likes WHERE post_id = $1`, postID,
	).Scan(&count)
	if err != nil {
		return false, 0, err
	}

	if err := tx.Commit(); err != nil {
		return false, 0, err
	}
	return !exists, count, nil
}

func (r *PostsRepo) ListPage(ctx context.Context, page, size int) (posts.Page, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM posts`).Scan(&total); err != nil {
		return posts.Page{}, err
	}

	content, err := r.query(ctx, `
		SELECT id, pet_id, image_data, created_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, size, page*size)
	if err != nil {
		return posts.Page{}, err
	}

	return posts.Page{
		Content:    content,
		Number:     page,
		TotalItems: total,
		TotalPages: (total + size - 1) / size,
	}, nil
}

func (r *PostsRepo) ListByPet(ctx context.Context, petID string) ([]posts.Post, error) {
	return r.query(ctx, `
		SELECT id, pet_id, image_data, created_at
		FROM posts
		WHERE pet_id = $1
		ORDER BY created_at DESC
	`, petID)
}

func (r *PostsRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]posts.Post, error) {
	return r.query(ctx, `
		SELECT po.id, po.pet_id, po.image_data, po.created_at
		FROM posts po
		JOIN pets p ON p.id = po.pet_id
		WHERE p.owner_email = $1
		ORDER BY po.created_at DESC
	`, ownerEmail)
}

func (r *PostsRepo) CountByPet(ctx context.Context, petID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM posts WHERE pet_id = $1`, petID,
	).Scan(&n)
	return n, err
}

func (r *PostsRepo) query(ctx context.Context, q string, args ...any) ([]posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posts.Post, 0)
	for rows.Next() {
		var p posts.Post
		if err := rows.Scan(&p.ID, &p.PetID, &p.ImageData, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		likes, err := r.loadLikes(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Likes = likes
	}
	return out, nil
}

func (r *PostsRepo) loadLikes(ctx context.Context, postID string) (posts.LikeSet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT pet_id FROM post_likes WHERE post_id = $1`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := posts.NewLikeSet()
	for rows.Next() {
		var petID string
		if err := rows.Scan(&petID); err != nil {
			return nil, err
		}
		likes.Add(petID)
	}
	return likes, rows.Err()
}
