package handlers

import (
	"net/http"

	"playconsole/internal/studio"
)

// Cost relays the account cost report, passing the optional filters through.
func (a *App) Cost(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	q := r.URL.Query()
	report, err := a.Studio.Cost(r.Context(), sess.Token(), studio.CostQuery{
		Username:  q.Get("username"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		YearMonth: q.Get("year_month"),
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("cost fetch failed")
		a.error(w, upstreamStatus(err), "cost_failed", err.Error())
		return
	}
	a.json(w, http.StatusOK, report)
}
