package v1

import (
	"net/http"

	"carebridge-backend/internal/delivery/http/response"
	"carebridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionUC domain.SubscriptionUsecase
}

// NewSubscriptionHandler registers the newsletter route (public, no auth required)
func NewSubscriptionHandler(public *gin.RouterGroup, subscriptionUC domain.SubscriptionUsecase) {
	handler := &SubscriptionHandler{
		subscriptionUC: subscriptionUC,
	}

	public.POST("/subscriptions", handler.Subscribe)
}

// Subscribe godoc
// @Summary      Subscribe to updates
// @Description  Sends the welcome email in the background. This is a public endpoint.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        subscription  body      domain.SubscribeInput  true  "Subscriber"
// @Success      202           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Router       /subscriptions [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req domain.SubscribeInput
	if !bindJSON(c, &req) {
		return
	}

	if err := h.subscriptionUC.Subscribe(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusAccepted, "Subscription received. Check your inbox for a welcome email.", nil)
}
