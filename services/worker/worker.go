package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/services"
	"ramadan-meal-recommender/services/advisor"
	"ramadan-meal-recommender/services/rabbitmq"
	"ramadan-meal-recommender/services/session"
	"ramadan-meal-recommender/services/trackLog"
	"ramadan-meal-recommender/structs"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

const ConnectionName = "meal-recommender"

// Publisher sends queue replies.
type Publisher interface {
	Publish(m rabbitmq.Message) error
}

// RecommendWorker answers recommendation jobs arriving on a queue. Journal
// is optional.
type RecommendWorker struct {
	Queue       string
	CallbackAPI string
	Journal     Journal
	advisor     *advisor.Advisor
}

func NewRecommendWorker(queue, callbackAPI string, a *advisor.Advisor) *RecommendWorker {
	return &RecommendWorker{Queue: queue, CallbackAPI: callbackAPI, advisor: a}
}

// Start connects, declares the queue and consumes in the background.
func (w *RecommendWorker) Start(domain string) error {
	conn := rabbitmq.NewConnection(ConnectionName, domain, []string{w.Queue})
	if err := conn.Connect(); err != nil {
		return err
	}
	if err := conn.BindQueue(); err != nil {
		return err
	}
	deliveries, err := conn.Consume()
	if err != nil {
		return err
	}

	for q, d := range deliveries {
		go conn.HandleConsumedDeliveries(q, d, w.Handler)
	}
	trackLog.Info(fmt.Sprintf(" [ %s ] Waiting for messages", w.Queue), true)
	return nil
}

func (w *RecommendWorker) Handler(c *rabbitmq.Connection, q string, deliveries <-chan amqp.Delivery) {
	for d := range deliveries {
		trackLog.Info(fmt.Sprintf("Queue[%s] 接受資料: %s", q, string(d.Body)), true)
		reply := w.Process(context.Background(), q, d.Body)
		w.Reply(c, d.ReplyTo, d.CorrelationId, reply)
	}
}

// Process runs one job body and returns the reply.
func (w *RecommendWorker) Process(ctx context.Context, q string, body []byte) structs.RecommendResponse {
	param := structs.RecommendQueueParam{Constraints: structs.DefaultConstraints()}
	if err := json.Unmarshal(body, &param); err != nil {
		trackLog.Error(err.Error(), true)
		return structs.RecommendResponse{Notice: enums.NoticeError, Message: fmt.Sprintf("invalid job: %v", err)}
	}

	// 檢查queue是否正確
	if param.QueueType != "" && param.QueueType != q {
		trackLog.Error(fmt.Sprintf("[MismatchQueue] task_id: %d, queue: %s, queue_type: %s", param.TaskID, q, param.QueueType), true)
		return structs.RecommendResponse{TaskID: param.TaskID, Notice: enums.NoticeError, Message: fmt.Sprintf("job for queue %q delivered to %q", param.QueueType, q)}
	}

	if err := binding.Validator.ValidateStruct(param.Constraints); err != nil {
		return structs.RecommendResponse{TaskID: param.TaskID, Notice: enums.NoticeError, Message: fmt.Sprintf("invalid constraints: %v", err)}
	}

	var s session.Session
	if err := s.Login(param.Username); err != nil {
		return structs.RecommendResponse{TaskID: param.TaskID, Notice: enums.NoticeError, Message: err.Error()}
	}

	w.journal(JobReceived, structs.JobLogModel{Type: "recommend", TaskID: param.TaskID, Queue: q, Username: s.Username, Result: true, Message: "start..."})

	outcome := w.advisor.Serve(ctx, s.Username, param.Constraints)
	resp := outcome.Response(s.Username, param.Constraints)
	resp.TaskID = param.TaskID

	w.journal(JobDone, structs.JobLogModel{Type: "recommend", TaskID: param.TaskID, Queue: q, Username: s.Username, Result: resp.Success, ResultCount: len(resp.Results), Message: resp.Message})
	w.jobDoneNotify(resp)
	return resp
}

func (w *RecommendWorker) journal(jobName string, data structs.JobLogModel) {
	if w.Journal == nil {
		return
	}
	if err := w.Journal.Insert(jobName, data); err != nil {
		trackLog.Error(err.Error(), true)
	}
}

// Reply publishes resp to replyTo; jobs without a reply queue are fire and
// forget.
func (w *RecommendWorker) Reply(p Publisher, replyTo, correlationID string, resp structs.RecommendResponse) {
	if replyTo == "" {
		return
	}
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	body, err := json.Marshal(resp)
	if err != nil {
		trackLog.Error(err.Error(), true)
		return
	}
	if err := p.Publish(rabbitmq.Message{
		Queue:         replyTo,
		ContentType:   "application/json",
		CorrelationID: correlationID,
		Body:          body,
	}); err != nil {
		trackLog.Error(fmt.Sprintf("reply to %s failed: %s", replyTo, err.Error()), true)
	}
}

func (w *RecommendWorker) jobDoneNotify(resp structs.RecommendResponse) {
	if w.CallbackAPI == "" {
		return
	}
	endpoint := w.CallbackAPI + "/api/v1/workerCallback/recommend"
	trackLog.Info(fmt.Sprintf("callback url %s task_id %d", endpoint, resp.TaskID), false)
	if _, err := services.HttpRequest(http.MethodPost, endpoint, nil, resp); err != nil {
		trackLog.Error(err.Error(), true)
	}
}
