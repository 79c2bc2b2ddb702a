package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/skycast/internal/models"
)

// Message types for async operations

// setupStartedMsg carries the channels of a running SetupFunc
type setupStartedMsg struct {
	progressChan chan string
	resultChan   chan setupResultMsg
}

// setupStatusMsg is one progress line from setup
type setupStatusMsg string

// setupResultMsg is sent when setup has finished
type setupResultMsg struct {
	predictor Predictor
	err       error
}

// predictionMsg is sent when a prediction has finished
type predictionMsg struct {
	req    models.FlightRequest
	result models.PredictionResult
	err    error
}

// startSetup runs setup in the background, reporting progress on a channel
func startSetup(setup SetupFunc) tea.Cmd {
	return func() tea.Msg {
		progressChan := make(chan string, 16)
		resultChan := make(chan setupResultMsg, 1)

		go func() {
			p, err := setup(progressChan)
			close(progressChan)
			resultChan <- setupResultMsg{predictor: p, err: err}
		}()

		return setupStartedMsg{progressChan: progressChan, resultChan: resultChan}
	}
}

// waitForSetupStatus waits for the next progress line. It returns nil once
// the channel is closed.
func waitForSetupStatus(progressChan <-chan string) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-progressChan
		if !ok {
			return nil
		}
		return setupStatusMsg(status)
	}
}

func waitForSetupResult(resultChan <-chan setupResultMsg) tea.Cmd {
	return func() tea.Msg {
		return <-resultChan
	}
}

// runPrediction runs one prediction in the background
func runPrediction(p Predictor, req models.FlightRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := p.Predict(ctx, req)
		return predictionMsg{req: req, result: res, err: err}
	}
}
