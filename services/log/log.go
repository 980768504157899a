package log

import (
	"fmt"
	"net"
	"os"
	"path"
	"path/filepath"
	"ramadan-meal-recommender/structs"
	"regexp"
	"sync"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

const hookHost = "ramadan-meal-recommender"

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// LogService hands out one logger per name. The file underneath rotates
// when the date changes.
type LogService struct {
	Config structs.Log

	mu      sync.Mutex
	loggers map[string]*fileLogger
	now     func() time.Time
}

type fileLogger struct {
	logger *logrus.Logger
	file   *os.File
	day    string
}

func NewLogService(config structs.Log) *LogService {
	return &LogService{Config: config, loggers: make(map[string]*fileLogger), now: time.Now}
}

// LoggerInit returns the logger writing to <dir>/<date>/<name>.log.
func (l *LogService) LoggerInit(name string) *logrus.Logger {
	fileName := unsafeFileChars.ReplaceAllString(name, "_") + ".log"

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loggers == nil {
		l.loggers = make(map[string]*fileLogger)
	}
	if l.now == nil {
		l.now = time.Now
	}
	day := l.now().Format("2006-01-02")

	entry, ok := l.loggers[fileName]
	if !ok {
		//实例化
		logger := logrus.New()
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
		l.addHooks(logger)
		entry = &fileLogger{logger: logger}
		l.loggers[fileName] = entry
	}
	if entry.day != day {
		l.rotate(entry, day, fileName)
	}
	return entry.logger
}

// Close releases every open log file.
func (l *LogService) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.loggers {
		if entry.file != nil {
			entry.file.Close()
			entry.file = nil
		}
	}
}

func (l *LogService) rotate(entry *fileLogger, day, fileName string) {
	logFilePath := path.Join(l.Config.Dir, day)
	if err := os.MkdirAll(logFilePath, 0755); err != nil {
		fmt.Println(err.Error())
	}
	src, err := os.OpenFile(filepath.FromSlash(path.Join(logFilePath, fileName)), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Println("err", err)
		return
	}

	old := entry.file
	entry.logger.SetOutput(src)
	entry.file = src
	entry.day = day
	if old != nil {
		old.Close()
	}
}

func (l *LogService) addHooks(logger *logrus.Logger) {
	if l.Config.ElkEnable == 1 {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{l.Config.ElkURL},
		})
		if err != nil {
			logger.Debug(err.Error())
		} else {
			hook, err := elogrus.NewAsyncElasticHook(client, hookHost, logrus.DebugLevel, l.Config.ElkIndex)
			if err != nil {
				logger.Debug(err.Error())
			} else {
				logger.Hooks.Add(hook)
			}
		}
	}

	if l.Config.LogstashEnable == 1 {
		conn, err := net.Dial("udp", l.Config.LogstashURL)
		if err != nil {
			logger.Debug(err)
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": hookHost, "index": l.Config.LogstashIndex}))
			logger.Hooks.Add(hook)
		}
	}
}
