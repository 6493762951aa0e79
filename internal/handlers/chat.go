package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Soulima01/Pranaya/internal/assistant"
	"github.com/Soulima01/Pranaya/internal/chat"
	"github.com/Soulima01/Pranaya/internal/middleware"
	"github.com/Soulima01/Pranaya/internal/store"
	"github.com/Soulima01/Pranaya/internal/utils"
)

// ProfileStore is the slice of the persisted store the chat surface reads.
type ProfileStore interface {
	Profile(userID string) (store.Profile, error)
}

// ChatHandler owns the conversation surface: it appends the user's turn to
// the session transcript, forwards it to the assistant service and routes
// the tagged reply through the chat router.
type ChatHandler struct {
	Store     ProfileStore
	Sessions  *chat.SessionManager
	Assistant *assistant.Client
	Router    *chat.Router
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(s ProfileStore, sessions *chat.SessionManager, client *assistant.Client, router *chat.Router) *ChatHandler {
	return &ChatHandler{Store: s, Sessions: sessions, Assistant: client, Router: router}
}

// SessionResponse represents the active conversation state.
type SessionResponse struct {
	Messages    []chat.Message `json:"messages"`
	Suggestions []string       `json:"suggestions"`
	Emergency   bool           `json:"emergency"`
}

// GetSession returns the active conversation, creating a greeted session on
// first access.
func (h *ChatHandler) GetSession(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	profile, err := h.Store.Profile(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load profile: "+err.Error())
		return
	}

	sess := h.Sessions.Get(userID, profile.Name)
	utils.Success(c, "Session fetched successfully", SessionResponse{
		Messages:    sess.Messages(),
		Suggestions: sess.Suggestions(),
		Emergency:   sess.Emergency(),
	})
}

// SendMessageRequest represents one user turn. Image is an optional inline
// data-URL; a turn may carry an image with no text.
type SendMessageRequest struct {
	Message string `json:"message"`
	Image   string `json:"image"`
}

// SendMessageResponse represents the routed assistant reply.
type SendMessageResponse struct {
	Reply       chat.Message `json:"reply"`
	Suggestions []string     `json:"suggestions"`
	Emergency   bool         `json:"emergency"`
	Audio       []byte       `json:"audio,omitempty"` // base64-encoded MP3 when voice output is on
}

// SendMessage handles one chat turn. The user's message is appended to the
// transcript before the assistant call goes out, so the transcript reflects
// submission order even though the reply arrives later. If the assistant is
// unreachable no reply entry is appended and no tracker state changes.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if req.Message == "" && req.Image == "" {
		utils.BadRequest(c, "Message or image is required")
		return
	}

	profile, err := h.Store.Profile(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load profile: "+err.Error())
		return
	}

	sess := h.Sessions.Get(userID, profile.Name)

	// Build the assistant context from the transcript as it stood before
	// this turn, prefixed with the profile line.
	history := append([]string{assistant.ProfileContext(profile)}, sess.History()...)

	// Suggestions belong to the previous reply; drop them as soon as a new
	// turn goes out so a failed call cannot leave stale prompts behind.
	sess.SetSuggestions(nil)

	content := req.Message
	if content == "" {
		content = "Analyzed this image:"
	}
	sess.Append(chat.Message{Role: chat.RoleUser, Content: content, Image: req.Image})

	res, err := h.Assistant.Chat(c.Request.Context(), assistant.ChatRequest{
		Message: req.Message,
		UserID:  userID,
		History: history,
		Gender:  string(profile.Gender),
		Image:   req.Image,
	})
	if err != nil {
		utils.BadGateway(c, "Assistant is unavailable: "+err.Error())
		return
	}

	outcome := h.Router.Apply(c.Request.Context(), userID, sess, res)

	utils.Success(c, "Message routed", SendMessageResponse{
		Reply:       outcome.Reply,
		Suggestions: sess.Suggestions(),
		Emergency:   sess.Emergency(),
		Audio:       outcome.Audio,
	})
}

// AcknowledgeEmergency clears the session-wide emergency flag once the
// client has dismissed the overlay.
func (h *ChatHandler) AcknowledgeEmergency(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	profile, err := h.Store.Profile(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load profile: "+err.Error())
		return
	}

	sess := h.Sessions.Get(userID, profile.Name)
	sess.SetEmergency(false)

	utils.Success(c, "Emergency acknowledged", nil)
}

// ClearSession drops the conversation so the next access starts fresh. The
// persisted profile and trackers are untouched.
func (h *ChatHandler) ClearSession(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	h.Sessions.Clear(userID)
	utils.Success(c, "Session cleared", nil)
}
