package domain

// DateFormat is the YYYY-MM-DD layout used on the wire and in DATE columns
const DateFormat = "2006-01-02"

// Business validation constants
const (
	MaxNotesLength         = 1000
	MaxReasonLength        = 500
	MaxMessageLength       = 2000
	MessagePreviewLength   = 100
	MaxSlotsPerDay         = 96
	MinRating              = 1
	MaxRating              = 5
	MaxReviewCommentLength = 2000
	DefaultProviderName    = "Provider"
	DefaultClientName      = "Client"
	DefaultParticipantName = "Utilizator"
)

// weekdayNames is indexed by time.Weekday (0 = Sunday)
var weekdayNames = [7]string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}
