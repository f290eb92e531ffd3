package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"callflow-studio/internal/auth"

	"github.com/gin-gonic/gin"
)

func serveAs(id auth.Identity, chain ...gin.HandlerFunc) int {
	gin.SetMode(gin.TestMode)

	handlers := []gin.HandlerFunc{func(c *gin.Context) {
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}}
	handlers = append(handlers, chain...)
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })

	r := gin.New()
	r.GET("/x", handlers...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w.Code
}

func TestRequireAnyRole_SuperAdminBypasses(t *testing.T) {
	code := serveAs(auth.Identity{UserID: "u", WorkspaceID: "w", Role: RoleSuperAdmin}, RequireWorkspace(), RequireAnyRole(RoleOwner))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireAnyRole_ViewerCannotEdit(t *testing.T) {
	code := serveAs(auth.Identity{UserID: "u", WorkspaceID: "w", Role: RoleViewer}, RequireWorkspace(), RequireAnyRole(EditRoles...))
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	code = serveAs(auth.Identity{UserID: "u", WorkspaceID: "w", Role: RoleViewer}, RequireWorkspace(), RequireAnyRole(ViewRoles...))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireAnyRole_WorkspaceRequired(t *testing.T) {
	code := serveAs(auth.Identity{UserID: "u", Role: RoleOwner}, RequireWorkspace(), RequireAnyRole(RoleOwner))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestIsKnownRole(t *testing.T) {
	if !IsKnownRole(RoleEditor) || IsKnownRole("network_operator") {
		t.Fatalf("unexpected role classification")
	}
}
