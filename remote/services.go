package remote

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// ErrNotFound is returned by mutations on records that do not exist.
// Lookups report a missing record with a nil result instead.
var ErrNotFound = goerrors.New("record not found", goerrors.CategoryNotFound)

type PostService interface {
	CreatePost(ctx context.Context, input NewPost, userID string) (Post, error)
	GetPosts(ctx context.Context, category, sortBy string, limit int) ([]Post, error)
	// GetPost returns nil when the post does not exist.
	GetPost(ctx context.Context, postID string) (*Post, error)
	UpdatePost(ctx context.Context, postID string, update PostUpdate) error
	DeletePost(ctx context.Context, postID string) error
	// LikePost reports whether a new like was recorded.
	LikePost(ctx context.Context, postID, userID string) (bool, error)
	UnlikePost(ctx context.Context, postID, userID string) (bool, error)
	GetLikedPosts(ctx context.Context, userID string) ([]Post, error)
	GetUserPosts(ctx context.Context, userID string) ([]Post, error)
	SearchPosts(ctx context.Context, query string) ([]Post, error)
}

type ProfileService interface {
	CreateProfile(ctx context.Context, input NewProfile) (string, error)
	GetProfiles(ctx context.Context) ([]Profile, error)
	GetProfile(ctx context.Context, profileID string) (*Profile, error)
	GetUserProfiles(ctx context.Context, userID string) ([]Profile, error)
	UpdateProfile(ctx context.Context, profileID string, update ProfileUpdate) error
	DeleteProfile(ctx context.Context, profileID string) error
}

type CommentService interface {
	CreateComment(ctx context.Context, input NewComment) (string, error)
	GetPostComments(ctx context.Context, postID string) ([]Comment, error)
	GetProfileComments(ctx context.Context, profileID string) ([]Comment, error)
	GetUserComments(ctx context.Context, userID string) ([]Comment, error)
	UpdateComment(ctx context.Context, commentID, text string) error
	DeleteComment(ctx context.Context, commentID string) error
}

type NotificationService interface {
	GetUserNotifications(ctx context.Context, userID string, limit int) ([]Notification, error)
	MarkNotificationAsRead(ctx context.Context, notificationID string) error
	MarkAllNotificationsAsRead(ctx context.Context, userID string) error
	CreateNotification(ctx context.Context, input NewNotification) (string, error)
}

type MessageService interface {
	SendMessage(ctx context.Context, input NewMessage) (string, error)
	GetMessages(ctx context.Context, userA, userB string) ([]Message, error)
	GetConversations(ctx context.Context, userID string) ([]Conversation, error)
}

type UserService interface {
	GetUserProfile(ctx context.Context, userID string) (*UserProfile, error)
	UpdateUserProfile(ctx context.Context, userID string, update UserProfileUpdate) error
	GetUserSettings(ctx context.Context, userID string) (UserSettings, error)
	UpdateUserSettings(ctx context.Context, userID string, settings UserSettings) error
}

// Backend groups every service contract.
type Backend interface {
	PostService
	ProfileService
	CommentService
	NotificationService
	MessageService
	UserService
}
