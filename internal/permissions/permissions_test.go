package permissions

import (
	"testing"

	"pixyo/internal/models"
)

func TestHasToolAccess(t *testing.T) {
	tools := func(ids ...string) *[]string { return &ids }

	tests := []struct {
		name   string
		meta   *models.UserMetadata
		toolID string
		want   bool
	}{
		{
			name:   "nil metadata is open by default",
			meta:   nil,
			toolID: ToolSocialGraphics,
			want:   true,
		},
		{
			name:   "metadata without allow-list is open by default",
			meta:   &models.UserMetadata{Role: "admin"},
			toolID: ToolProductScenes,
			want:   true,
		},
		{
			name:   "empty allow-list denies everything",
			meta:   &models.UserMetadata{AllowedTools: tools()},
			toolID: ToolSocialGraphics,
			want:   false,
		},
		{
			name:   "tool in allow-list",
			meta:   &models.UserMetadata{AllowedTools: tools(ToolSocialGraphics)},
			toolID: ToolSocialGraphics,
			want:   true,
		},
		{
			name:   "tool missing from allow-list",
			meta:   &models.UserMetadata{AllowedTools: tools(ToolSocialGraphics)},
			toolID: ToolProductScenes,
			want:   false,
		},
		{
			name:   "admin role does not imply tool access",
			meta:   &models.UserMetadata{Role: "admin", AllowedTools: tools()},
			toolID: ToolSocialGraphics,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasToolAccess(tt.meta, tt.toolID); got != tt.want {
				t.Errorf("HasToolAccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasToolAccess_NoAllowListOpensEveryTool(t *testing.T) {
	// Backward-compat invariant: pre-permission-system accounts keep
	// access to every tool id, known or not.
	for _, id := range []string{ToolSocialGraphics, ToolProductScenes, "future-tool"} {
		if !HasToolAccess(nil, id) {
			t.Errorf("HasToolAccess(nil, %q) = false, want true", id)
		}
		if !HasToolAccess(&models.UserMetadata{}, id) {
			t.Errorf("HasToolAccess({}, %q) = false, want true", id)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		meta *models.UserMetadata
		want bool
	}{
		{"nil metadata", nil, false},
		{"empty role", &models.UserMetadata{}, false},
		{"admin role", &models.UserMetadata{Role: "admin"}, true},
		{"other role", &models.UserMetadata{Role: "editor"}, false},
		{"case sensitive", &models.UserMetadata{Role: "Admin"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdmin(tt.meta); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}
