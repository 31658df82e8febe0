// Package store is the generic table accessor every entity repo builds on.
// Column names are whitelisted per table and values are always bound parameters.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"assetdb/internal/models"

	"github.com/go-viper/mapstructure/v2"
	"gorm.io/gorm"
)

// Fields — входные данные create/update в виде column -> value.
type Fields map[string]any

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoFields      = fmt.Errorf("%w: no fields provided", ErrInvalidInput)
	ErrNoValidFields = fmt.Errorf("%w: no valid fields provided", ErrInvalidInput)
	ErrInvalidColumn = fmt.Errorf("%w: invalid column name", ErrInvalidInput)
	ErrInvalidValue  = fmt.Errorf("%w: invalid field value", ErrInvalidInput)
	ErrSearchTerm    = fmt.Errorf("%w: search term is required", ErrInvalidInput)
	ErrNoColumns     = fmt.Errorf("%w: search columns are required", ErrInvalidInput)
	ErrEmptyValue    = fmt.Errorf("%w: value is required", ErrInvalidInput)
)

var (
	reDangerous = regexp.MustCompile(`(?i)('|"|;|--|\*|/\*|\*/|xp_|sp_)`)
	reColumn    = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)
)

// ValidColumn reports whether name is safe to splice into SQL as an identifier.
func ValidColumn(name string) bool { return reColumn.MatchString(name) }

// Direction нормализует направление сортировки.
func Direction(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "DESC") {
		return "DESC"
	}
	return "ASC"
}

type FindOptions struct {
	Where          map[string]any
	OrderBy        string
	OrderDirection string
	Limit          int
	Offset         int
}

type SearchOptions struct {
	Limit  int
	Offset int
	Exact  bool
}

type Store[T models.Record] struct {
	db       *gorm.DB
	table    string
	pk       string
	fillable map[string]struct{}
}

func New[T models.Record](db *gorm.DB, table string, fillable ...string) *Store[T] {
	f := make(map[string]struct{}, len(fillable))
	for _, c := range fillable {
		f[c] = struct{}{}
	}
	return &Store[T]{db: db, table: table, pk: "id", fillable: f}
}

func (s *Store[T]) Table() string { return s.table }

// DB — сырой *gorm.DB для специализированных запросов репозиториев.
func (s *Store[T]) DB(ctx context.Context) *gorm.DB { return s.db.WithContext(ctx) }

// WithTx returns a copy bound to tx; used inside gorm.DB.Transaction.
func (s *Store[T]) WithTx(tx *gorm.DB) *Store[T] {
	c := *s
	c.db = tx
	return &c
}

// Filter validates keys and drops everything outside the whitelist.
func (s *Store[T]) Filter(fields Fields) (Fields, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	out := make(Fields, len(fields))
	for k, v := range fields {
		if reDangerous.MatchString(k) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidColumn, k)
		}
		if _, ok := s.fillable[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *Store[T]) Create(ctx context.Context, fields Fields) (*T, error) {
	filtered, err := s.Filter(fields)
	if err != nil {
		return nil, err
	}
	if len(filtered) == 0 {
		return nil, ErrNoValidFields
	}
	var rec T
	if err := Decode(filtered, &rec); err != nil {
		return nil, err
	}
	cols := append(keys(filtered), "created_at", "updated_at")
	if err := s.db.WithContext(ctx).Select(cols).Create(&rec).Error; err != nil {
		return nil, err
	}
	return s.FindByID(ctx, rec.GetID())
}

func (s *Store[T]) FindAll(ctx context.Context, opts FindOptions) ([]T, error) {
	q := s.db.WithContext(ctx).Table(s.table)
	for _, k := range sortedKeys(opts.Where) {
		if !ValidColumn(k) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidColumn, k)
		}
		q = q.Where(fmt.Sprintf("%s = ?", k), opts.Where[k])
	}
	if opts.OrderBy != "" {
		if !ValidColumn(opts.OrderBy) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidColumn, opts.OrderBy)
		}
		q = q.Order(opts.OrderBy + " " + Direction(opts.OrderDirection))
	}
	q = paginate(q, opts.Limit, opts.Offset)

	out := make([]T, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns (nil, nil) when the row does not exist.
func (s *Store[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var rec T
	err := s.db.WithContext(ctx).Table(s.table).Where(s.pk+" = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update пишет только разрешённые колонки. Нет строки — (nil, nil).
// Если после фильтрации писать нечего, возвращается текущая строка.
func (s *Store[T]) Update(ctx context.Context, id uint, fields Fields) (*T, error) {
	if len(fields) == 0 {
		return s.FindByID(ctx, id)
	}
	filtered, err := s.Filter(fields)
	if err != nil {
		return nil, err
	}
	if len(filtered) == 0 {
		return s.FindByID(ctx, id)
	}
	var rec T
	if err := Decode(filtered, &rec); err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(&rec).Where(s.pk+" = ?", id).Select(keys(filtered)).Updates(&rec)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.FindByID(ctx, id)
}

func (s *Store[T]) Delete(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Where(s.pk+" = ?", id).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Search — LIKE %term% по колонкам через OR (или точное равенство при Exact).
func (s *Store[T]) Search(ctx context.Context, term string, columns []string, opts SearchOptions) ([]T, error) {
	if strings.TrimSpace(term) == "" {
		return nil, ErrSearchTerm
	}
	cond, args, err := SearchCondition(s.db.Dialector.Name(), term, columns, opts.Exact)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Table(s.table).Where(cond, args...)
	q = paginate(q, opts.Limit, opts.Offset)

	out := make([]T, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SearchCondition builds "(a LIKE ? OR b LIKE ?)" for the given dialect.
func SearchCondition(dialect, term string, columns []string, exact bool) (string, []any, error) {
	if len(columns) == 0 {
		return "", nil, ErrNoColumns
	}
	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, c := range columns {
		if !ValidColumn(c) {
			return "", nil, fmt.Errorf("%w: %s", ErrInvalidColumn, c)
		}
		col := c
		if dialect == "postgres" {
			// в postgres LIKE не работает по integer-колонкам
			col = "CAST(" + c + " AS TEXT)"
		}
		if exact {
			conds = append(conds, col+" = ?")
			args = append(args, term)
		} else {
			conds = append(conds, col+" LIKE ?")
			args = append(args, "%"+term+"%")
		}
	}
	return "(" + strings.Join(conds, " OR ") + ")", args, nil
}

// FindByColumn returns the first row where column = value, or (nil, nil).
func (s *Store[T]) FindByColumn(ctx context.Context, column string, value any) (*T, error) {
	if !ValidColumn(column) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidColumn, column)
	}
	if value == nil || value == "" {
		return nil, ErrEmptyValue
	}
	var rec T
	err := s.db.WithContext(ctx).Table(s.table).Where(column+" = ?", value).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store[T]) Count(ctx context.Context, where map[string]any) (int64, error) {
	q := s.db.WithContext(ctx).Table(s.table)
	for _, k := range sortedKeys(where) {
		if !ValidColumn(k) {
			return 0, fmt.Errorf("%w: %s", ErrInvalidColumn, k)
		}
		q = q.Where(fmt.Sprintf("%s = ?", k), where[k])
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store[T]) Exists(ctx context.Context, id uint) (bool, error) {
	n, err := s.Count(ctx, map[string]any{s.pk: id})
	return n > 0, err
}

// CreateMany — всё или ничего в одной транзакции.
func (s *Store[T]) CreateMany(ctx context.Context, rows []Fields) ([]T, error) {
	out := make([]T, 0, len(rows))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := s.WithTx(tx)
		for _, f := range rows {
			rec, err := st.Create(ctx, f)
			if err != nil {
				return err
			}
			out = append(out, *rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store[T]) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(s.pk+" IN ?", ids).Delete(new(T))
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Decode converts loosely typed JSON values into the gorm model ("5" -> 5 for id columns).
func Decode(fields Fields, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(fields)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return nil
}

func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
		if offset > 0 {
			q = q.Offset(offset)
		}
	}
	return q
}

func keys(f Fields) []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
