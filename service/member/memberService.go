package membersvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"libraryledger/model"
	"libraryledger/util/fault"
	"libraryledger/validator"
)

type Repo interface {
	Insert(ctx context.Context, name string) (*model.Member, error)
	GetByID(ctx context.Context, id int64) (*model.Member, error)
	FindByName(ctx context.Context, name string) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, candidate model.Member) (*model.Member, error)
	GetByID(ctx context.Context, id int64) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	Update(ctx context.Context, id int64, details model.Member) (*model.Member, error)
	Delete(ctx context.Context, id int64) error
	FindByName(ctx context.Context, name string) (*model.Member, error)
}

type service struct {
	r Repo
	v validator.Member
}

func New(r Repo, v validator.Member) Service { return &service{r: r, v: v} }

func (s *service) Create(ctx context.Context, candidate model.Member) (*model.Member, error) {
	candidate.Name = strings.TrimSpace(candidate.Name)

	if violations := s.v.Validate(candidate); len(violations) > 0 {
		return nil, fault.Invalid(strings.Join(violations, ", "))
	}
	return s.r.Insert(ctx, candidate.Name)
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	m, err := s.r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fault.NotFound(fmt.Sprintf("member with ID %d not found", id))
	}
	return m, nil
}

func (s *service) List(ctx context.Context) ([]model.Member, error) {
	return s.r.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, details model.Member) (*model.Member, error) {
	name := strings.TrimSpace(details.Name)
	err := s.r.UpdateName(ctx, id, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.NotFound(fmt.Sprintf("member with ID %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	return &model.Member{ID: id, Name: name}, nil
}

// Delete removes the member without checking for active loans; loans keep
// lookup keys only and tolerate a missing member.
func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.r.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fault.NotFound(fmt.Sprintf("member with ID %d not found", id))
	}
	return err
}

func (s *service) FindByName(ctx context.Context, name string) (*model.Member, error) {
	return s.r.FindByName(ctx, strings.TrimSpace(name))
}
