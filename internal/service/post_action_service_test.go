package service

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/model"
	"context"
	"errors"
	"testing"
)

func TestCreateComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	writer := env.users.add(t, "writer@example.com", model.RoleWriter, true)
	admin := env.users.add(t, "admin@example.com", model.RoleAdmin, true)
	reader := env.users.add(t, "reader@example.com", model.RoleReader, true)
	inactive := env.users.add(t, "off@example.com", model.RoleReader, false)
	pending := seedPost(t, env, writer, admin, "Pending", model.PostStatusPending)

	comment, err := env.actionSvc.CreateComment(ctx, reader, &dto.CommentCreateDTO{PostID: pending.ID, Content: " nice "})
	if err != nil {
		t.Fatalf("comment on pending post: %v", err)
	}
	if comment.AuthorID != reader.ID || comment.Content != "nice" || comment.Author == nil {
		t.Errorf("comment = %+v", comment)
	}

	tests := []struct {
		name   string
		caller *model.User
		req    dto.CommentCreateDTO
		want   error
	}{
		{"anonymous", nil, dto.CommentCreateDTO{PostID: pending.ID, Content: "x"}, ErrInvalidToken},
		{"inactive", inactive, dto.CommentCreateDTO{PostID: pending.ID, Content: "x"}, ErrUserInactive},
		{"missing post", reader, dto.CommentCreateDTO{PostID: 999, Content: "x"}, ErrPostNotFound},
		{"blank content", reader, dto.CommentCreateDTO{PostID: pending.ID, Content: "   "}, ErrParamInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.actionSvc.CreateComment(ctx, tt.caller, &tt.req); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	comments, err := env.actionSvc.GetComments(ctx, pending.ID, 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 {
		t.Errorf("comments = %d, want 1", len(comments))
	}
}

func TestLikeAndUnlike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	writer := env.users.add(t, "writer@example.com", model.RoleWriter, true)
	admin := env.users.add(t, "admin@example.com", model.RoleAdmin, true)
	reader := env.users.add(t, "reader@example.com", model.RoleReader, true)
	post := seedPost(t, env, writer, admin, "Live", model.PostStatusPublished)

	like, err := env.actionSvc.LikePost(ctx, reader, post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if like.UserID != reader.ID || like.PostID != post.ID || like.ID == 0 {
		t.Errorf("like = %+v", like)
	}

	if _, err = env.actionSvc.LikePost(ctx, reader, post.ID); !errors.Is(err, ErrLikeDuplicate) {
		t.Errorf("second like err = %v, want ErrLikeDuplicate", err)
	}
	if _, err = env.actionSvc.LikePost(ctx, reader, 999); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("missing post err = %v", err)
	}
	if n, _ := env.actions.GetLikeCountByPostID(ctx, post.ID); n != 1 {
		t.Errorf("likes = %d, want 1", n)
	}

	if err = env.actionSvc.UnlikePost(ctx, reader, post.ID); err != nil {
		t.Fatal(err)
	}
	if err = env.actionSvc.UnlikePost(ctx, reader, post.ID); !errors.Is(err, ErrLikeNotFound) {
		t.Errorf("second unlike err = %v, want ErrLikeNotFound", err)
	}
	if _, err = env.actionSvc.LikePost(ctx, reader, post.ID); err != nil {
		t.Errorf("like after unlike: %v", err)
	}
	if err = env.actionSvc.UnlikePost(ctx, nil, post.ID); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("anonymous unlike err = %v", err)
	}
}
