package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/models"
	"ramadan-meal-recommender/services/advisor"
	"ramadan-meal-recommender/services/audit"
	"ramadan-meal-recommender/services/dataset"
	"ramadan-meal-recommender/services/rabbitmq"
	"ramadan-meal-recommender/structs"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type fakeStore struct {
	mu   sync.Mutex
	rows []audit.Row
}

func (f *fakeStore) EnsureHeader(ctx context.Context) error { return nil }

func (f *fakeStore) Append(ctx context.Context, row audit.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, row)
	return nil
}

type fakeJournal struct {
	names []string
	data  []structs.JobLogModel
}

func (f *fakeJournal) Insert(jobName string, data structs.JobLogModel) error {
	f.names = append(f.names, jobName)
	f.data = append(f.data, data)
	return nil
}

type fakePublisher struct {
	messages []rabbitmq.Message
	err      error
}

func (f *fakePublisher) Publish(m rabbitmq.Message) error {
	f.messages = append(f.messages, m)
	return f.err
}

func newWorker(t *testing.T, callback string) (*RecommendWorker, *fakeStore) {
	t.Helper()
	table := dataset.NewTable([]models.MealRecord{
		{Title: "Lentil Soup", Calories: 500, Protein: 25, Sodium: 600, MealSlot: enums.SlotSuhoor, FinalScore: 1, Kind: "soup", Position: 0},
		{Title: "Kofta", Calories: 900, Protein: 40, Sodium: 1500, MealSlot: enums.SlotIftar, FinalScore: 1, Kind: "grill", Position: 1},
	}, true)
	store := &fakeStore{}
	quiet := logrus.New()
	quiet.SetOutput(ioutil.Discard)
	a := advisor.New(table, audit.NewLogger(store, time.UTC), func(string) logrus.FieldLogger { return quiet })
	return NewRecommendWorker("recommend", callback, a), store
}

func TestProcess_Recommends(t *testing.T) {
	var called struct {
		sync.Mutex
		path string
		body structs.RecommendResponse
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Lock()
		defer called.Unlock()
		called.path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&called.body)
	}))
	defer srv.Close()

	w, store := newWorker(t, srv.URL)
	journal := &fakeJournal{}
	w.Journal = journal
	body := `{"username":" Mona ","task_id":7,"queue_type":"recommend","constraints":{"meal":"suhoor","calories_max":700,"protein_min":20,"sodium_max":1200,"top_n":5}}`
	resp := w.Process(context.Background(), "recommend", []byte(body))

	if !resp.Success || resp.Notice != enums.NoticeSuccess {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.TaskID != 7 || resp.Username != "Mona" {
		t.Errorf("task/username not carried: %+v", resp)
	}
	if len(resp.Results) != 1 || resp.Results[0].Title != "Lentil Soup" {
		t.Errorf("unexpected results %+v", resp.Results)
	}
	if len(store.rows) != 1 {
		t.Errorf("expected one audit row, got %d", len(store.rows))
	}

	if len(journal.names) != 2 || journal.names[0] != JobReceived || journal.names[1] != JobDone {
		t.Errorf("unexpected journal %v", journal.names)
	}
	if journal.data[1].ResultCount != 1 || !journal.data[1].Result || journal.data[1].TaskID != 7 {
		t.Errorf("unexpected done entry %+v", journal.data[1])
	}

	called.Lock()
	defer called.Unlock()
	if called.path != "/api/v1/workerCallback/recommend" {
		t.Errorf("callback path = %q", called.path)
	}
	if called.body.TaskID != 7 {
		t.Errorf("callback body = %+v", called.body)
	}
}

func TestProcess_DefaultsWhenConstraintsOmitted(t *testing.T) {
	w, _ := newWorker(t, "")
	resp := w.Process(context.Background(), "recommend", []byte(`{"username":"Ali"}`))
	if !resp.Success {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Constraints.TopN != 10 || resp.Constraints.Meal != enums.SlotSuhoor {
		t.Errorf("defaults not applied: %+v", resp.Constraints)
	}
}

func TestProcess_Rejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"mismatched queue", `{"username":"Ali","queue_type":"other"}`},
		{"blank username", `{"username":"   "}`},
		{"out of range", `{"username":"Ali","constraints":{"meal":"lunch","calories_max":700,"protein_min":20,"sodium_max":1200,"top_n":5}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, store := newWorker(t, "")
			resp := w.Process(context.Background(), "recommend", []byte(tc.body))
			if resp.Success || resp.Notice != enums.NoticeError || resp.Message == "" {
				t.Errorf("expected rejection, got %+v", resp)
			}
			if len(store.rows) != 0 {
				t.Errorf("rejected job wrote %d audit rows", len(store.rows))
			}
		})
	}
}

func TestReply(t *testing.T) {
	w, _ := newWorker(t, "")
	resp := structs.RecommendResponse{Success: true, TaskID: 3}

	p := &fakePublisher{}
	w.Reply(p, "", "abc", resp)
	if len(p.messages) != 0 {
		t.Fatalf("published without reply queue")
	}

	w.Reply(p, "amq.gen-1", "abc", resp)
	if len(p.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(p.messages))
	}
	m := p.messages[0]
	if m.Queue != "amq.gen-1" || m.CorrelationID != "abc" || m.ContentType != "application/json" {
		t.Errorf("unexpected message %+v", m)
	}
	var got structs.RecommendResponse
	if err := json.Unmarshal(m.Body, &got); err != nil || got.TaskID != 3 {
		t.Errorf("unexpected body %s (%v)", m.Body, err)
	}

	w.Reply(p, "amq.gen-2", "", resp)
	if p.messages[1].CorrelationID == "" {
		t.Errorf("correlation id should be generated")
	}

	failing := &fakePublisher{err: errors.New("closed")}
	w.Reply(failing, "amq.gen-3", "x", resp)
	if len(failing.messages) != 1 {
		t.Errorf("expected publish attempt")
	}
}
