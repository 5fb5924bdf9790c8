package domain

import (
	"encoding/json"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

type ManagerData struct {
	BusinessName string    `bson:"businessName" json:"businessName"`
	Phone        string    `bson:"phone" json:"phone"`
	Verified     bool      `bson:"verified" json:"verified"`
	AppliedAt    time.Time `bson:"appliedAt" json:"appliedAt"`
}

type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Email       string               `bson:"email" json:"email"`
	Password    string               `bson:"password" json:"-"`
	Role        Role                 `bson:"role" json:"role"`
	ManagerData *ManagerData         `bson:"managerData,omitempty" json:"managerData,omitempty"`
	Favourites  []primitive.ObjectID `bson:"favourites" json:"favourites"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the projection returned to clients. The password hash never
// leaves the service layer.
type PublicUser struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Role  Role               `json:"role"`
	Email string             `json:"email"`
}

func (user *User) Public() *PublicUser {
	return &PublicUser{
		ID:    user.ID,
		Name:  user.Name,
		Role:  user.Role,
		Email: user.Email,
	}
}

type Image struct {
	Filename string `bson:"filename,omitempty" json:"filename,omitempty"`
	URL      string `bson:"url,omitempty" json:"url,omitempty"`
}

type Review struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Listing struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	MainImage   *Image             `bson:"mainImage,omitempty" json:"mainImage,omitempty"`
	Images      []Image            `bson:"images" json:"images"`
	Price       float64            `bson:"price" json:"price"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Country     string             `bson:"country,omitempty" json:"country,omitempty"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
}

type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Hotel      primitive.ObjectID `bson:"hotel" json:"hotel"`
	UserName   string             `bson:"userName" json:"userName"`
	UserEmail  string             `bson:"userEmail" json:"userEmail"`
	CheckIn    time.Time          `bson:"checkIn" json:"checkIn"`
	CheckOut   time.Time          `bson:"checkOut" json:"checkOut"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
}

// ReviewView is the read-side shape of a review: the stored reviewer
// reference resolved to a display name. Reviews of deleted accounts keep an
// empty name instead of failing the whole read.
type ReviewView struct {
	User      primitive.ObjectID `json:"user"`
	UserName  string             `json:"userName"`
	Rating    int                `json:"rating"`
	Comment   string             `json:"comment,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

type ListingDetails struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	MainImage   *Image             `json:"mainImage,omitempty"`
	Images      []Image            `json:"images"`
	Price       float64            `json:"price"`
	Location    string             `json:"location,omitempty"`
	Country     string             `json:"country,omitempty"`
	Owner       primitive.ObjectID `json:"owner"`
	Reviews     []ReviewView       `json:"reviews"`
}

// BookingDetails carries the referenced listing inline. Hotel is nil when
// the listing has been deleted since the booking was made.
type BookingDetails struct {
	Booking
	HotelDetails *Listing `json:"hotelDetails"`
}

type Claims struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ManagerApplication struct {
	BusinessName string `json:"businessName" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
}

type CreateListingInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	MainImage   *Image  `json:"mainImage"`
	Images      []Image `json:"images"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	Country     string  `json:"country"`
}

type ReviewInput struct {
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

type BookingInput struct {
	HotelID   string    `json:"hotelId" validate:"required"`
	UserName  string    `json:"userName" validate:"required"`
	UserEmail string    `json:"userEmail" validate:"required,email"`
	CheckIn   time.Time `json:"checkIn" validate:"required"`
	CheckOut  time.Time `json:"checkOut" validate:"required"`
}

func (input *SignupInput) Validate() error {
	return validator.New().Struct(input)
}

func (input *LoginInput) Validate() error {
	return validator.New().Struct(input)
}

func (input *BookingInput) Validate() error {
	return validator.New().Struct(input)
}

func (input *ManagerApplication) Validate() error {
	return validator.New().Struct(input)
}

func (input *CreateListingInput) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(input)
}

func (listing *Listing) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(listing)
}
