// Package health aggregates dependency checks into the JSON document served on the health
// endpoints.
package health

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type Check struct {
	Name  string
	Check func(context.Context, bool) (int, string, error)
}

// CheckAll runs every check and reports 503 if any of them fails. Messages that are JSON
// objects themselves are nested as dependencies.
func CheckAll(ctx context.Context, checkLiveness bool, checks []Check) (int, string, error) {
	var (
		overallStatus = http.StatusOK
		messages      = make([]string, 0, len(checks))
	)

	for _, check := range checks {
		status, message, err := check.Check(ctx, checkLiveness)
		if err != nil || status != http.StatusOK {
			overallStatus = http.StatusServiceUnavailable
		}

		var msg string

		if strings.HasPrefix(message, "{") && strings.HasSuffix(message, "}") {
			msg = fmt.Sprintf(`{"resource": "%s", "status": "%d", "error": "%v", "dependencies": [%s]}`, check.Name, status, err, message)
		} else {
			msg = fmt.Sprintf(`{"resource": "%s", "status": "%d", "error": "%v", "message": "%s"}`, check.Name, status, err, message)
		}

		messages = append(messages, msg)
	}

	return overallStatus, fmt.Sprintf(`{"status":"%d", "dependencies":[%s]}`, overallStatus, strings.Join(messages, ",\n")), nil
}
