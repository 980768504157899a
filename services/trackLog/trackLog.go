package trackLog

import (
	"fmt"
	"ramadan-meal-recommender/services/log"

	"github.com/sirupsen/logrus"
)

var logTracker *logrus.Entry

func LogTrackInit(logService *log.LogService) {
	temp := logService.LoggerInit("tracker")
	logTracker = temp.WithFields(logrus.Fields{"task": "track", "name": "tracker"})
}

// Tracker returns the process-wide entry; before LogTrackInit it logs to
// stderr only.
func Tracker() *logrus.Entry {
	if logTracker == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logTracker
}

func Info(message string, needWriteLog bool) {
	if needWriteLog {
		Tracker().Info(message)
	}
	fmt.Println(message)
}

func Warn(message string, needWriteLog bool) {
	if needWriteLog {
		Tracker().Warn(message)
	}
	fmt.Println(message)
}

func Error(message string, needWriteLog bool) {
	if needWriteLog {
		Tracker().Error(message)
	}
	fmt.Println(message)
}
