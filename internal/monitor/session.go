package monitor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const sessionFile = "current_session.json"

type sessionState struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

type initRequest struct {
	ProjectPath string `json:"project_path"`
	Language    string `json:"language"`
	Description string `json:"description"`
}

type initResponse struct {
	SessionID string `json:"session_id"`
}

// SnapshotRequest mirrors one analysis to the monitoring service.
type SnapshotRequest struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// SessionContext is the service's view of an active session.
type SessionContext struct {
	SessionID string            `json:"session_id"`
	Snapshots []json.RawMessage `json:"snapshots"`
	Context   json.RawMessage   `json:"context"`
}

// StartSession reuses the cached session when present, otherwise registers a
// new one with the service and caches it.
func (c *Client) StartSession(ctx context.Context, projectPath, description string) (string, error) {
	if id, err := c.loadSession(); err == nil && id != "" {
		return id, nil
	}

	var resp initResponse
	err := c.postJSON(ctx, "/sessions/init", initRequest{
		ProjectPath: projectPath,
		Language:    "go",
		Description: description,
	}, &resp)
	if err != nil {
		return "", err
	}

	if err := c.saveSession(resp.SessionID); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

// SaveSnapshot pushes one content snapshot into the active session.
func (c *Client) SaveSnapshot(ctx context.Context, filePath, content string) error {
	id, err := c.loadSession()
	if err != nil || id == "" {
		return ErrNoSession
	}

	return c.postJSON(ctx, "/sessions/"+id+"/snapshot", SnapshotRequest{
		FilePath: filePath,
		Content:  content,
	}, nil)
}

// GetSessionContext fetches the accumulated context of the active session.
func (c *Client) GetSessionContext(ctx context.Context) (*SessionContext, error) {
	id, err := c.loadSession()
	if err != nil || id == "" {
		return nil, ErrNoSession
	}

	var sc SessionContext
	if err := c.getJSON(ctx, "/sessions/"+id+"/context", &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// EndSession drops the cached session.
func (c *Client) EndSession() error {
	path := filepath.Join(c.config.DataDir, sessionFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *Client) loadSession() (string, error) {
	data, err := os.ReadFile(filepath.Join(c.config.DataDir, sessionFile))
	if err != nil {
		return "", err
	}

	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return "", err
	}
	return state.SessionID, nil
}

func (c *Client) saveSession(id string) error {
	if err := os.MkdirAll(c.config.DataDir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sessionState{SessionID: id, CreatedAt: time.Now()}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.config.DataDir, sessionFile), data, 0o644)
}
