package advisor

import (
	"context"
	"fmt"
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/services/audit"
	"ramadan-meal-recommender/services/dataset"
	"ramadan-meal-recommender/services/recommend"
	"ramadan-meal-recommender/structs"

	"github.com/sirupsen/logrus"
)

const (
	MessageLogged    = "Request logged to the audit sheet."
	MessageNoResults = "No meals match these limits. Try relaxing them."
)

// Outcome is what one "show recommendations" interaction produced. Results
// may be present together with an error notice when only the audit append
// failed.
type Outcome struct {
	Results []recommend.Recommendation
	Notice  string
	Message string
	Logged  bool
	Err     error
}

// Response renders the outcome for the JSON API and queue replies.
func (o Outcome) Response(username string, c structs.Constraints) structs.RecommendResponse {
	return structs.RecommendResponse{
		Success:     o.Err == nil,
		Notice:      o.Notice,
		Message:     o.Message,
		Username:    username,
		Constraints: c,
		Results:     recommend.Results(o.Results),
		Logged:      o.Logged,
	}
}

// Advisor runs the request flow: check the audit header, rank, then append
// the audit row for non-empty results. Nothing is retried.
type Advisor struct {
	table  *dataset.Table
	audit  *audit.Logger
	logger func(username string) logrus.FieldLogger
}

func New(table *dataset.Table, auditLogger *audit.Logger, logger func(username string) logrus.FieldLogger) *Advisor {
	return &Advisor{table: table, audit: auditLogger, logger: logger}
}

func (a *Advisor) Table() *dataset.Table {
	return a.table
}

func (a *Advisor) Serve(ctx context.Context, username string, c structs.Constraints) Outcome {
	logwr := a.logger(username).WithFields(logrus.Fields{
		"task":         "recommend",
		"username":     username,
		"meal":         c.Meal,
		"calories_max": c.CaloriesMax,
		"protein_min":  c.ProteinMin,
		"sodium_max":   c.SodiumMax,
		"top_n":        c.TopN,
	})

	if err := a.audit.EnsureHeader(ctx); err != nil {
		logwr.WithField("error_message", err.Error()).Error("audit header check failed")
		return failed(err, nil)
	}

	recs := recommend.Recommend(a.table, c)
	if len(recs) == 0 {
		logwr.Info("no results")
		return Outcome{Results: recs, Notice: enums.NoticeWarning, Message: MessageNoResults}
	}

	if _, err := a.audit.Record(ctx, username, c, recommend.Titles(recs)); err != nil {
		logwr.WithFields(logrus.Fields{"result_count": len(recs), "error_message": err.Error()}).Error("audit append failed")
		return failed(err, recs)
	}

	logwr.WithField("result_count", len(recs)).Info("recommendations logged")
	return Outcome{Results: recs, Notice: enums.NoticeSuccess, Message: MessageLogged, Logged: true}
}

func failed(err error, recs []recommend.Recommendation) Outcome {
	return Outcome{
		Results: recs,
		Notice:  enums.NoticeError,
		Message: fmt.Sprintf("Something went wrong: %v", err),
		Err:     err,
	}
}
