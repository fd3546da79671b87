package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tanayvk/conduit/pipeline"
	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/server"
)

// Logging provides basic request logging without colors.
func Logging(next server.Handler) server.Handler {
	return func(r *request.Request) response.Response {
		now := time.Now()
		resp := next(r)
		log.Printf("%s %s %d in %s\n", r.Method, r.Path, resp.GetStatusCode(), time.Since(now))
		return resp
	}
}

// LoggingColored provides colored request logging.
func LoggingColored() pipeline.Middleware {
	methodStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Background(lipgloss.Color("12")).
		Width(8).
		Align(lipgloss.Center)

	return func(next server.Handler) server.Handler {
		return func(r *request.Request) response.Response {
			now := time.Now()
			resp := next(r)

			statusCode := int(resp.GetStatusCode())
			styledStatus := statusCodeStyle(statusCode).Render(fmt.Sprintf("%d", statusCode))
			styledMethod := methodStyle.Render(string(r.Method))

			log.Printf("%s %s %s in %s\n", styledMethod, r.Path, styledStatus, time.Since(now))
			return resp
		}
	}
}

// statusCodeStyle returns a lipgloss style for an HTTP status code class.
func statusCodeStyle(statusCode int) lipgloss.Style {
	switch {
	case statusCode >= 200 && statusCode < 300:
		// 2xx Success - Green
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	case statusCode >= 300 && statusCode < 400:
		// 3xx Redirection - Yellow
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	case statusCode >= 400 && statusCode < 500:
		// 4xx Client Error - Orange/Red
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	case statusCode >= 500:
		// 5xx Server Error - Bright Red
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	}
}
