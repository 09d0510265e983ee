package schedule

import (
	"context"
	"errors"

	"beautyboosters/models"
)

var (
	ErrUnknownToken = errors.New("unknown availability token")
	ErrNoDropTarget = errors.New("token released outside any cell")
)

// Service serves the admin calendar: rendering a date and replaying drops on it.
type Service struct {
	grids    *GridBuilder
	assigner *Assigner
}

func NewService(grids *GridBuilder, assigner *Assigner) *Service {
	return &Service{grids: grids, assigner: assigner}
}

func (s *Service) Grid(ctx context.Context, date string) (*Grid, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	board, err := s.grids.Build(ctx, d)
	if err != nil {
		return nil, err
	}
	return board.Render(), nil
}

// Drop replays a drag gesture over the date's board and hands the resulting intent to
// the assigner. A release over no cell produces ErrNoDropTarget and changes nothing.
func (s *Service) Drop(ctx context.Context, req models.DropRequest) (*models.ReassignmentResult, error) {
	d, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	board, err := s.grids.Build(ctx, d)
	if err != nil {
		return nil, err
	}

	if !board.Surface.BeginDrag(req.DraggableID) {
		return nil, ErrUnknownToken
	}
	board.Surface.Hover(req.DroppableID)
	ev := board.Surface.Release()
	if ev == nil {
		return nil, ErrNoDropTarget
	}
	return s.assigner.Reassign(ctx, *ev)
}
