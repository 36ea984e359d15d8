package authorization

import (
	"io"
	"time"
)

// CreateAccount registers a user together with their person, contact and optional image.
type CreateAccount struct {
	Username    string `json:"username" validate:"required,username"`
	Password    string `json:"password" validate:"required,pwd,max=72"`
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Age         int    `json:"age" validate:"gte=0,lte=150"`
	TaxNumber   string `json:"taxNumber" validate:"required,taxnumber"`
	Gender      string `json:"gender" validate:"omitempty,max=20"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	ImagePath   string `json:"imagePath" validate:"omitempty,max=2048"`
}

type SignIn struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshSession struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type SignOut struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

// UploadUserImage stores a picture for the user and records it as a UserImage.
type UploadUserImage struct {
	UserID      string    `json:"userId" validate:"required,uuid"`
	Filename    string    `json:"filename" validate:"required,max=255"`
	ContentType string    `json:"contentType" validate:"required,oneof=image/png image/jpeg image/webp"`
	Size        int64     `json:"size" validate:"gt=0,lte=5242880"`
	Body        io.Reader `json:"-"`
}

type AccountCreated struct {
	UserID string `json:"userId"`
}

// Session is an issued token pair.
type Session struct {
	UserID           string    `json:"userId"`
	Token            string    `json:"token"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

type ImageUploaded struct {
	ImageID string `json:"imageId"`
	URL     string `json:"url"`
}

type Empty struct{}
