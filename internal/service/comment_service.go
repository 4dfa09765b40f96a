package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/events"
	"github.com/spec-kit/task-service/internal/observability"
	"github.com/spec-kit/task-service/internal/repository"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// CommentService coordinates comment threads on tasks.
type CommentService struct {
	comments   repository.CommentRepository
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// CommentDependencies bundles requirements for the comment service.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	TaskRepo    repository.TaskRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewCommentService builds the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		tasks:      deps.TaskRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Create adds a comment to the task's thread. The caller must be a manager
// or user with access to the task.
func (s *CommentService) Create(ctx context.Context, actor *domain.User, taskID, message string) (*domain.Comment, error) {
	if !auth.CanCreateComment(actor.Role) {
		return nil, apperrors.NewForbidden("admins do not participate in task threads")
	}

	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessTaskComments(actor, task) {
		return nil, apperrors.NewForbidden("access denied")
	}

	comment := &domain.Comment{
		TaskID:   task.ID,
		AuthorID: actor.ID,
		Message:  message,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	observability.CommentsTotal.WithLabelValues("created").Inc()
	s.publish(ctx, events.NewEvent(events.EventCommentAdded, actor.ID, events.CommentPayload{
		TaskID:    task.ID,
		CommentID: comment.ID,
	}))

	s.logger.Info("comment added",
		zap.String("task_id", task.ID),
		zap.String("comment_id", comment.ID),
		zap.String("actor_id", actor.ID),
	)
	return comment, nil
}

// List returns the task's comment thread in chronological order.
func (s *CommentService) List(ctx context.Context, actor *domain.User, taskID string, page, size int) ([]domain.Comment, int64, error) {
	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, 0, err
	}
	if !auth.CanAccessTaskComments(actor, task) {
		return nil, 0, apperrors.NewForbidden("access denied")
	}

	limit, offset := pageBounds(page, size)
	comments, err := s.comments.ListByTask(ctx, task.ID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	total, err := s.comments.CountByTask(ctx, task.ID)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return comments, total, nil
}

// Delete removes a comment. Only the author or an admin may delete, and the
// comment must belong to the task named in the request.
func (s *CommentService) Delete(ctx context.Context, actor *domain.User, taskID, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment", map[string]any{"comment_id": commentID})
		}
		return apperrors.MapError(err)
	}
	if comment.TaskID != taskID {
		return apperrors.NewBadRequest("comment does not belong to this task", map[string]any{
			"comment_id": commentID,
			"task_id":    taskID,
		})
	}
	if !auth.CanDeleteComment(actor, comment) {
		return apperrors.NewForbidden("only the author or an admin may delete a comment")
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment", map[string]any{"comment_id": commentID})
		}
		return apperrors.MapError(err)
	}

	observability.CommentsTotal.WithLabelValues("deleted").Inc()
	s.publish(ctx, events.NewEvent(events.EventCommentDeleted, actor.ID, events.CommentPayload{
		TaskID:    taskID,
		CommentID: commentID,
	}))

	s.logger.Info("comment deleted",
		zap.String("comment_id", commentID),
		zap.String("actor_id", actor.ID),
	)
	return nil
}

func (s *CommentService) loadTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", map[string]any{"task_id": taskID})
		}
		return nil, apperrors.MapError(err)
	}
	return task, nil
}

func (s *CommentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
