package slist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tidytodo/server/pkg/dbq"
	"tidytodo/server/pkg/dbtime"
	"tidytodo/server/pkg/idwrap"
	"tidytodo/server/pkg/model/mlist"
)

var ErrNoListFound error = sql.ErrNoRows

var (
	ErrNameExists  = errors.New("list name already exists")
	ErrInvalidName = errors.New("invalid list name")
)

type ListService struct {
	queries *dbq.Queries
}

func New(queries *dbq.Queries) ListService {
	return ListService{queries: queries}
}

func (s ListService) TX(tx *sql.Tx) ListService {
	return ListService{queries: s.queries.WithTx(tx)}
}

func ConvertToDBList(list mlist.List) dbq.TodoList {
	return dbq.TodoList{
		ID:        list.ID,
		Name:      list.Name,
		CreatedAt: list.Created.UnixMilli(),
	}
}

func ConvertToModelList(list dbq.TodoList) *mlist.List {
	return &mlist.List{
		ID:      list.ID,
		Name:    list.Name,
		Created: dbtime.DBTime(time.UnixMilli(list.CreatedAt)),
	}
}

// Create validates the name, enforces cross-list name uniqueness and
// inserts the list.
func (s ListService) Create(ctx context.Context, name string) (*mlist.List, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	exists, err := s.queries.ListExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %q", ErrNameExists, name)
	}

	list := mlist.List{
		ID:      idwrap.NewNow(),
		Name:    name,
		Created: dbtime.DBNow(),
	}
	dbList := ConvertToDBList(list)
	err = s.queries.CreateList(ctx, dbq.CreateListParams{
		ID:        dbList.ID,
		Name:      dbList.Name,
		CreatedAt: dbList.CreatedAt,
	})
	if err != nil {
		if dbq.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", ErrNameExists, name)
		}
		return nil, err
	}
	return &list, nil
}

func (s ListService) Get(ctx context.Context, id idwrap.IDWrap) (*mlist.List, error) {
	list, err := s.queries.GetList(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("list %s: %w", id.String(), ErrNoListFound)
		}
		return nil, err
	}
	return ConvertToModelList(list), nil
}

// GetAll returns all lists newest first.
func (s ListService) GetAll(ctx context.Context) ([]mlist.List, error) {
	lists, err := s.queries.GetLists(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]mlist.List, 0, len(lists))
	for _, l := range lists {
		out = append(out, *ConvertToModelList(l))
	}
	return out, nil
}

// Rename changes a list's name, keeping names unique across other lists.
func (s ListService) Rename(ctx context.Context, id idwrap.IDWrap, newName string) (*mlist.List, error) {
	list, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateName(newName); err != nil {
		return nil, err
	}
	taken, err := s.queries.ListExistsByNameExcluding(ctx, dbq.ListExistsByNameExcludingParams{
		Name: newName,
		ID:   id,
	})
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %q", ErrNameExists, newName)
	}
	err = s.queries.UpdateListName(ctx, dbq.UpdateListNameParams{Name: newName, ID: id})
	if err != nil {
		if dbq.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", ErrNameExists, newName)
		}
		return nil, err
	}
	list.Name = newName
	return list, nil
}

// Delete removes a list; items cascade at the store layer.
func (s ListService) Delete(ctx context.Context, id idwrap.IDWrap) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.queries.DeleteList(ctx, id)
}

func (s ListService) Count(ctx context.Context) (int64, error) {
	return s.queries.CountLists(ctx)
}

func (s ListService) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.queries.ListExistsByName(ctx, name)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty or whitespace", ErrInvalidName)
	}
	if len([]rune(name)) > mlist.NameMaxLen {
		return fmt.Errorf("%w: name is too long (maximum %d characters)", ErrInvalidName, mlist.NameMaxLen)
	}
	return nil
}
