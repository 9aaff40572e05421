package cache

import (
	"sort"
	"time"
)

// Key classes known to the domain wrappers.
const (
	ClassPosts         Class = "posts"
	ClassPost          Class = "post"
	ClassLikedPosts    Class = "likedPosts"
	ClassProfiles      Class = "profiles"
	ClassProfile       Class = "profile"
	ClassUserProfiles  Class = "userProfiles"
	ClassComments      Class = "comments"
	ClassConversations Class = "conversations"
	ClassMessages      Class = "messages"
	ClassNotifications Class = "notifications"
	ClassUserProfile   Class = "userProfile"
	ClassUserSettings  Class = "userSettings"
)

// Freshness windows per data family.
const (
	PostsTTL         = 2 * time.Minute
	ProfilesTTL      = 10 * time.Minute
	CommentsTTL      = time.Minute
	MessagesTTL      = 30 * time.Second
	NotificationsTTL = time.Minute
	UserDataTTL      = 5 * time.Minute
)

// Defaults substituted for empty list parameters.
const (
	AllCategories = "all"
	DefaultSort   = "recent"
)

const (
	scopeList    = "list"
	scopeUser    = "user"
	scopePost    = "post"
	scopeProfile = "profile"
	scopeAll     = "all"
)

// PostsKey identifies a post listing filtered by category and ordered by sortBy.
func PostsKey(category, sortBy string) Key {
	if category == "" {
		category = AllCategories
	}
	if sortBy == "" {
		sortBy = DefaultSort
	}
	return NewKey(ClassPosts, scopeList, category, sortBy)
}

func PostKey(postID string) Key { return NewKey(ClassPost, postID) }

// UserPostsKey shares the posts class so post list invalidation covers it.
func UserPostsKey(userID string) Key { return NewKey(ClassPosts, scopeUser, userID) }

func LikedPostsKey(userID string) Key { return NewKey(ClassLikedPosts, userID) }

func ProfilesKey() Key { return NewKey(ClassProfiles, scopeAll) }

func ProfileKey(profileID string) Key { return NewKey(ClassProfile, profileID) }

func UserProfilesKey(userID string) Key { return NewKey(ClassUserProfiles, userID) }

func PostCommentsKey(postID string) Key { return NewKey(ClassComments, scopePost, postID) }

func ProfileCommentsKey(profileID string) Key {
	return NewKey(ClassComments, scopeProfile, profileID)
}

func UserCommentsKey(userID string) Key { return NewKey(ClassComments, scopeUser, userID) }

func ConversationsKey(userID string) Key { return NewKey(ClassConversations, userID) }

// MessagesKey identifies the message thread between two users. The ids are
// sorted so both participants hit the same entry, and kept as separate
// segments so no pair of ids can render like another pair.
func MessagesKey(userA, userB string) Key {
	ids := []string{userA, userB}
	sort.Strings(ids)
	return NewKey(ClassMessages, ids[0], ids[1])
}

func NotificationsKey(userID string) Key { return NewKey(ClassNotifications, userID) }

func UserProfileKey(userID string) Key { return NewKey(ClassUserProfile, userID) }

func UserSettingsKey(userID string) Key { return NewKey(ClassUserSettings, userID) }

// AllPostLists covers every listing and per-user posts entry.
func AllPostLists() Pattern { return ClassPattern(ClassPosts) }

// AllPosts covers every single post entry.
func AllPosts() Pattern { return ClassPattern(ClassPost) }

func AllProfiles() Pattern { return ClassPattern(ClassProfiles) }

func AllComments() Pattern { return ClassPattern(ClassComments) }

func AllNotifications() Pattern { return ClassPattern(ClassNotifications) }

// TTLFor returns the freshness window used for key. Unknown classes fall
// back to UserDataTTL.
func TTLFor(key Key) time.Duration {
	switch key.Class {
	case ClassPosts:
		if len(key.Params) > 0 && key.Params[0] == scopeUser {
			return UserDataTTL
		}
		return PostsTTL
	case ClassPost:
		return PostsTTL
	case ClassLikedPosts, ClassUserProfiles, ClassUserProfile, ClassUserSettings:
		return UserDataTTL
	case ClassProfiles, ClassProfile:
		return ProfilesTTL
	case ClassComments:
		if len(key.Params) > 0 && key.Params[0] == scopeUser {
			return UserDataTTL
		}
		return CommentsTTL
	case ClassConversations, ClassMessages:
		return MessagesTTL
	case ClassNotifications:
		return NotificationsTTL
	default:
		return UserDataTTL
	}
}
