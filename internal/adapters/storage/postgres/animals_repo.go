package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"my-zoo/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) QueryIDs(ctx context.Context, q animals.Query) ([]int64, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.Type != "" {
		where = append(where, "a.type = "+arg(q.Type))
	}
	if q.PublishedOnly {
		where = append(where, "a.published = TRUE")
	}
	if q.HabitatTermID != nil {
		where = append(where, `EXISTS (
			SELECT 1 FROM animal_habitats h
			WHERE h.animal_id = a.id AND h.term_id = `+arg(*q.HabitatTermID)+`
		)`)
	}

	query := "SELECT a.id FROM animals a"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.created_at DESC, a.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LoadMultiple carga registros con foto, hábitats (por delta) y traducciones.
func (r *AnimalsRepo) LoadMultiple(ctx context.Context, ids []int64) (map[int64]animals.Record, error) {
	out := make(map[int64]animals.Record, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	if err := r.loadBase(ctx, ids, out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	if err := r.loadHabitats(ctx, ids, out); err != nil {
		return nil, err
	}
	if err := r.loadTranslations(ctx, ids, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnimalsRepo) loadBase(ctx context.Context, ids []int64, out map[int64]animals.Record) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			a.id, a.type, a.published,
			a.title, a.scientific_name, a.gender, a.age, a.birth_date,
			f.id, f.uri,
			a.owner_user_id, a.langcode,
			a.created_at, a.changed_at
		FROM animals a
		LEFT JOIN files f ON f.id = a.photo_file_id
		WHERE a.id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec     animals.Record
			sci     sql.NullString
			gender  sql.NullString
			age     sql.NullInt64
			bd      sql.NullTime
			fileID  sql.NullInt64
			fileURI sql.NullString
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Type,
			&rec.Published,
			&rec.Title,
			&sci,
			&gender,
			&age,
			&bd,
			&fileID,
			&fileURI,
			&rec.OwnerUserID,
			&rec.Langcode,
			&rec.CreatedAt,
			&rec.ChangedAt,
		); err != nil {
			return err
		}

		rec.ScientificName = fromNullString(sci)
		rec.Gender = fromNullString(gender)
		if age.Valid {
			v := int(age.Int64)
			rec.Age = &v
		}
		if bd.Valid {
			t := bd.Time
			rec.BirthDate = &t
		}
		if fileID.Valid && fileURI.Valid {
			rec.Photo = &animals.FileRef{ID: fileID.Int64, URI: fileURI.String}
		}
		rec.Habitats = []animals.HabitatTerm{}

		out[rec.ID] = rec
	}
	return rows.Err()
}

func (r *AnimalsRepo) loadHabitats(ctx context.Context, ids []int64, out map[int64]animals.Record) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT h.animal_id, t.id, t.vocabulary, t.name
		FROM animal_habitats h
		JOIN taxonomy_terms t ON t.id = h.term_id
		WHERE h.animal_id = ANY($1)
		ORDER BY h.animal_id, h.delta
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			animalID int64
			t        animals.HabitatTerm
		)
		if err := rows.Scan(&animalID, &t.ID, &t.Vocabulary, &t.Name); err != nil {
			return err
		}
		rec, ok := out[animalID]
		if !ok {
			continue
		}
		rec.Habitats = append(rec.Habitats, t)
		out[animalID] = rec
	}
	return rows.Err()
}

func (r *AnimalsRepo) loadTranslations(ctx context.Context, ids []int64, out map[int64]animals.Record) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT animal_id, langcode, title, scientific_name, gender
		FROM animal_translations
		WHERE animal_id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			animalID int64
			tr       animals.Translation
			sci      sql.NullString
			gender   sql.NullString
		)
		if err := rows.Scan(&animalID, &tr.Langcode, &tr.Title, &sci, &gender); err != nil {
			return err
		}
		rec, ok := out[animalID]
		if !ok {
			continue
		}
		tr.ScientificName = fromNullString(sci)
		tr.Gender = fromNullString(gender)
		if rec.Translations == nil {
			rec.Translations = make(map[string]animals.Translation)
		}
		rec.Translations[tr.Langcode] = tr
		out[animalID] = rec
	}
	return rows.Err()
}

func (r *AnimalsRepo) FindTermsByName(ctx context.Context, vocabulary, name string) ([]animals.HabitatTerm, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, vocabulary, name
		FROM taxonomy_terms
		WHERE vocabulary = $1 AND name = $2
		ORDER BY id
	`, vocabulary, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.HabitatTerm, 0)
	for rows.Next() {
		var t animals.HabitatTerm
		if err := rows.Scan(&t.ID, &t.Vocabulary, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
