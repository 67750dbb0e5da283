package http

import (
	"net/http"

	"github.com/mauv0809/swiss-forum/internal/config"
	"github.com/mauv0809/swiss-forum/internal/director"
	"github.com/mauv0809/swiss-forum/internal/metrics"
)

type Server struct {
	Director       *director.Director
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}

type registerPlayerRequest struct {
	Name string `json:"name"`
}

type addPostRequest struct {
	Content string `json:"content"`
}

type countResponse struct {
	Tournament string `json:"tournament,omitempty"`
	Count      int    `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// pushMessage is the body Pub/Sub push subscriptions deliver.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"` // base64-encoded MessagePack event
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
}
