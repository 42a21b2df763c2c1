package testutils

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	moduleModel "github.com/fcbarera0210/biomachinis/internal/model/module"
	postModel "github.com/fcbarera0210/biomachinis/internal/model/post"
	tagModel "github.com/fcbarera0210/biomachinis/internal/model/tag"
	userModel "github.com/fcbarera0210/biomachinis/internal/model/user"
	"github.com/fcbarera0210/biomachinis/internal/slug"
)

// CreateTestUser creates a test user with unique name/email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *userModel.User {
	uniqueID := uuid.NewString()

	testUser := &userModel.User{
		Name:     fmt.Sprintf("test_user_%s", uniqueID),
		Email:    fmt.Sprintf("test_%s@example.com", uniqueID),
		IsActive: true,
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if testUser.PasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
		if err != nil {
			panic(fmt.Sprintf("Failed to hash test password: %v", err))
		}
		testUser.PasswordHash = string(hash)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*userModel.User)

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *userModel.User) {
		u.Email = email
	}
}

// WithPassword sets the password hash from a plaintext password
func WithPassword(password string) UserOption {
	return func(u *userModel.User) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			panic(fmt.Sprintf("Failed to hash test password: %v", err))
		}
		u.PasswordHash = string(hash)
	}
}

// WithInactive marks the user as deactivated
func WithInactive() UserOption {
	return func(u *userModel.User) {
		u.IsActive = false
	}
}

// GrantModule grants the user access to the module with the given code
func GrantModule(db *gorm.DB, userID, moduleCode string) {
	var m moduleModel.Module
	if err := db.Where("code = ?", moduleCode).First(&m).Error; err != nil {
		panic(fmt.Sprintf("Failed to find module %s: %v", moduleCode, err))
	}
	um := moduleModel.UserModule{UserID: userID, ModuleID: m.ID}
	if err := db.Create(&um).Error; err != nil {
		panic(fmt.Sprintf("Failed to grant module access: %v", err))
	}
}

// CreateTestTag creates a test tag with a unique name
func CreateTestTag(db *gorm.DB, opts ...TagOption) *tagModel.Tag {
	uniqueID := uuid.NewString()
	name := fmt.Sprintf("test-tag-%s", uniqueID)

	testTag := &tagModel.Tag{
		Name: name,
		Slug: slug.Slugify(name),
	}

	for _, opt := range opts {
		opt(testTag)
	}

	if err := db.Create(testTag).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test tag: %v", err))
	}

	return testTag
}

// TagOption configures test tag
type TagOption func(*tagModel.Tag)

// WithTagName sets the tag name and recomputes the slug
func WithTagName(name string) TagOption {
	return func(t *tagModel.Tag) {
		t.Name = name
		t.Slug = slug.Slugify(name)
	}
}

// CreateTestPost creates a test post owned by the given author
func CreateTestPost(db *gorm.DB, authorID string, opts ...PostOption) *postModel.Post {
	uniqueID := uuid.NewString()
	title := fmt.Sprintf("Test Post %s", uniqueID)

	testPost := &postModel.Post{
		Title:    title,
		Slug:     slug.Slugify(title),
		Content:  `{"type":"doc","content":[]}`,
		AuthorID: authorID,
	}

	for _, opt := range opts {
		opt(testPost)
	}

	if err := db.Create(testPost).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test post: %v", err))
	}

	return testPost
}

// PostOption configures test post
type PostOption func(*postModel.Post)

// WithTitle sets the post title and recomputes the slug
func WithTitle(title string) PostOption {
	return func(p *postModel.Post) {
		p.Title = title
		p.Slug = slug.Slugify(title)
	}
}

// WithSlug overrides the slug
func WithSlug(s string) PostOption {
	return func(p *postModel.Post) {
		p.Slug = s
	}
}

// WithPublished marks the post as published
func WithPublished() PostOption {
	return func(p *postModel.Post) {
		p.Published = true
	}
}

// AttachTag links a post to a tag
func AttachTag(db *gorm.DB, postID string, tagID uint) {
	pt := postModel.PostTag{PostID: postID, TagID: tagID}
	if err := db.Create(&pt).Error; err != nil {
		panic(fmt.Sprintf("Failed to attach tag: %v", err))
	}
}
