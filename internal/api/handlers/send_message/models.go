package send_message

import (
	"github.com/terapiemd/booking-service/internal/service/bookings/models"
	sendMessage "github.com/terapiemd/booking-service/internal/usecase/send_message"
)

// SendMessageRequest HTTP request model
type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// SendMessageResponse HTTP response model
type SendMessageResponse struct {
	Success bool                    `json:"success"`
	Message *models.MessageResponse `json:"message"`
}

// FromUseCaseResponse converts the stored message to the HTTP response
func FromUseCaseResponse(resp *sendMessage.Response) *SendMessageResponse {
	m := resp.Message
	return &SendMessageResponse{
		Success: true,
		Message: &models.MessageResponse{
			ID:        m.ID,
			BookingID: m.BookingID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			ReadAt:    m.ReadAt,
			CreatedAt: m.CreatedAt,
		},
	}
}
