package routing

import (
	"strings"

	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
)

const (
	LoginPath           = "/login"
	SeekerDashboardPath = "/dashboard/seeker"
	FinderDashboardPath = "/dashboard/finder"
)

type Action int

const (
	ActionAllow Action = iota
	ActionRedirect
)

// Decision is the outcome of evaluating a navigation request.
type Decision struct {
	Action   Action
	Location string
}

func Allow() Decision {
	return Decision{Action: ActionAllow}
}

func Redirect(to string) Decision {
	return Decision{Action: ActionRedirect, Location: to}
}

func (d Decision) Allowed() bool {
	return d.Action == ActionAllow
}

// Evaluate decides whether the session may render the requested path. It is a
// pure function of its inputs and must be re-run on every session change: a
// sign-out while a protected view is mounted redirects on the next render.
//
// Precedence: no session redirects to login; a session with the wrong role on
// a role dashboard redirects to the counterpart dashboard; everything else is
// allowed.
func Evaluate(sess *models.Session, path string) Decision {
	return EvaluateWithRole(sess, "", path)
}

// EvaluateWithRole applies the same policy with an explicit active-role
// override, which takes precedence over the session's own role when set.
func EvaluateWithRole(sess *models.Session, activeRole models.Role, path string) Decision {
	if !isProtected(path) {
		return Allow()
	}
	if sess == nil {
		return Redirect(LoginPath)
	}

	required, ok := dashboardRole(path)
	if !ok {
		return Allow()
	}

	role := sess.Role
	if activeRole.Valid() {
		role = activeRole
	}
	if role != required {
		return Redirect(dashboardPath(required.Counterpart()))
	}
	return Allow()
}

func isProtected(path string) bool {
	return strings.HasPrefix(path, "/dashboard")
}

func dashboardRole(path string) (models.Role, bool) {
	switch path {
	case SeekerDashboardPath:
		return models.RoleSeeker, true
	case FinderDashboardPath:
		return models.RoleFinder, true
	}
	return "", false
}

func dashboardPath(role models.Role) string {
	if role == models.RoleFinder {
		return FinderDashboardPath
	}
	return SeekerDashboardPath
}
