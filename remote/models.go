package remote

import (
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// Post sort orders accepted by PostService.GetPosts.
const (
	SortRecent   = "recent"
	SortTop      = "top"
	SortTrending = "trending"
	SortComments = "comments"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Category   string    `json:"category"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Type       string    `json:"type"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	Views      int       `json:"views"`
	LikedBy    []string  `json:"likedBy,omitempty"`
	IsDeleted  bool      `json:"isDeleted"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewPost is the input for PostService.CreatePost.
type NewPost struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	Category   string `json:"category"`
	AuthorName string `json:"authorName,omitempty"`
	Type       string `json:"type,omitempty"`
}

func (p NewPost) Validate() error {
	return validated(validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Text, validation.Required),
		validation.Field(&p.Category, validation.Required),
	), "invalid post")
}

// PostUpdate carries the fields to change; nil fields are left alone.
type PostUpdate struct {
	Title    *string `json:"title,omitempty"`
	Text     *string `json:"text,omitempty"`
	Category *string `json:"category,omitempty"`
}

// Profile describes a person discussed by the community.
type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Age         int       `json:"age,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type NewProfile struct {
	Name        string `json:"name"`
	Age         int    `json:"age,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	CreatedBy   string `json:"createdBy"`
}

func (p NewProfile) Validate() error {
	return validated(validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.CreatedBy, validation.Required),
		validation.Field(&p.Age, validation.Min(0)),
	), "invalid profile")
}

type ProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// Comment targets either a post or a profile.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId,omitempty"`
	ProfileID  string    `json:"profileId,omitempty"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type NewComment struct {
	PostID     string `json:"postId,omitempty"`
	ProfileID  string `json:"profileId,omitempty"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName,omitempty"`
	Text       string `json:"text"`
}

func (c NewComment) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.AuthorID, validation.Required),
		validation.Field(&c.Text, validation.Required),
		validation.Field(&c.PostID, validation.When(c.ProfileID == "", validation.Required.Error("post or profile is required"))),
	)
	return validated(err, "invalid comment")
}

type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"createdAt"`
}

type NewNotification struct {
	UserID string            `json:"userId"`
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

func (n NewNotification) Validate() error {
	return validated(validation.ValidateStruct(&n,
		validation.Field(&n.UserID, validation.Required),
		validation.Field(&n.Type, validation.Required),
	), "invalid notification")
}

// Message is a direct message. Text is opaque to this package; clients
// encrypt it before sending.
type Message struct {
	ID          string    `json:"id"`
	ThreadKey   string    `json:"threadKey"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}

type NewMessage struct {
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Text        string `json:"text"`
}

func (m NewMessage) Validate() error {
	return validated(validation.ValidateStruct(&m,
		validation.Field(&m.SenderID, validation.Required),
		validation.Field(&m.RecipientID, validation.Required, validation.NotIn(m.SenderID).Error("cannot message yourself")),
		validation.Field(&m.Text, validation.Required),
	), "invalid message")
}

var threadIDEscaper = strings.NewReplacer("%", "%25", "_", "%5F")

// ThreadID identifies the conversation between two users. It does not depend
// on argument order, and ids containing the "_" separator are escaped so two
// different pairs never share an id.
func ThreadID(userA, userB string) string {
	ids := []string{threadIDEscaper.Replace(userA), threadIDEscaper.Replace(userB)}
	sort.Strings(ids)
	return ids[0] + "_" + ids[1]
}

// Conversation summarizes the latest message of a thread.
type Conversation struct {
	ThreadKey     string    `json:"threadKey"`
	Participants  []string  `json:"participants"`
	LastMessage   string    `json:"lastMessage"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

// UserProfile is the signed in user's own account record.
type UserProfile struct {
	UserID          string    `json:"userId"`
	DisplayName     string    `json:"displayName"`
	Username        string    `json:"username"`
	Bio             string    `json:"bio,omitempty"`
	IsVerified      bool      `json:"isVerified"`
	ProfileComplete bool      `json:"profileComplete"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type UserProfileUpdate struct {
	DisplayName *string `json:"displayName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

type UserSettings struct {
	NotificationsEnabled   bool `json:"notificationsEnabled"`
	CommunityAlertsEnabled bool `json:"communityAlertsEnabled"`
	LocationEnabled        bool `json:"locationEnabled"`
	AutoBackupEnabled      bool `json:"autoBackupEnabled"`
	DataUsageEnabled       bool `json:"dataUsageEnabled"`
	DarkModeEnabled        bool `json:"darkModeEnabled"`
}

// DefaultUserSettings is what a new account starts with.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		NotificationsEnabled:   true,
		CommunityAlertsEnabled: true,
		AutoBackupEnabled:      true,
	}
}

func validated(err error, message string) error {
	if err != nil {
		return goerrors.FromOzzoValidation(err, message)
	}
	return nil
}
