package check

import (
	"encoding/json"
	"fmt"
	"net/http"
	"ramadan-meal-recommender/services/dataset"
	"ramadan-meal-recommender/services/rabbitmq"
	"ramadan-meal-recommender/services/trackLog"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

type AliveResponse struct {
	Success  bool      `json:"success"`
	Messsage string    `json:"message"`
	Info     CheckInfo `json:"info"`
}

type CheckInfo struct {
	DatasetRows int      `json:"dataset_rows"`
	AuditDriver string   `json:"audit_driver"`
	Queues      []string `json:"queue"`
	RoutineNum  int      `json:"routine_num"`
}

// Checker reports process health. Connection is the pooled queue connection
// name; empty when the worker is disabled.
type Checker struct {
	Table       *dataset.Table
	AuditDriver string
	Connection  string
}

func (ch *Checker) CheckAlive(c *gin.Context) {
	resMsg := "main thread alive"
	checkInfo := CheckInfo{DatasetRows: ch.Table.Len(), AuditDriver: ch.AuditDriver}

	if ch.Connection != "" {
		resMsg = ch.checkQueue(&checkInfo, resMsg)
	}

	// 檢查gorutine數目
	checkInfo.RoutineNum = runtime.NumGoroutine()
	trackLog.Info(fmt.Sprintf("goroutine number: %d", checkInfo.RoutineNum), false)

	c.JSON(http.StatusOK, AliveResponse{true, resMsg, checkInfo})
}

func (ch *Checker) checkQueue(checkInfo *CheckInfo, resMsg string) string {
	rabbitConn := rabbitmq.GetConnection(ch.Connection)
	//檢查mq實體是否在連線池
	if rabbitConn == nil {
		resMsg = "Get connection pool fail"
		trackLog.Error(resMsg, false)
		return resMsg
	}
	// 檢查mq連線
	if !rabbitConn.Connected() {
		resMsg = "Api detect Connection lost, Reconnecting.."
		trackLog.Error(resMsg, false)
		if err := rabbitConn.Reconnect(); err != nil {
			resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
			trackLog.Error(resMsg, false)
		}
	}
	//檢查mq channel
	if rabbitConn.Connected() {
		for _, q := range rabbitConn.Queues {
			queue, queueErr := rabbitConn.InspectQueue(q)
			if queueErr != nil {
				resMsg = fmt.Sprintf("Queue[%s] error: %s", q, queueErr.Error())
				trackLog.Error(resMsg, false)
			} else {
				queueJson, _ := json.Marshal(queue)
				checkInfo.Queues = append(checkInfo.Queues, string(queueJson))
			}
		}
	} else {
		resMsg = "Channel get fail"
		trackLog.Error(resMsg, false)
	}
	// 花1秒檢查是否重連線
	select {
	case err := <-rabbitConn.ApiErr:
		trackLog.Error(fmt.Sprintf("api error: %s", err.Error()), false)
		if err := rabbitConn.Reconnect(); err != nil {
			resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
			trackLog.Error(resMsg, false)
		}
	case <-time.After(time.Second * 1):
	}
	return resMsg
}
