package rabbitmq

import (
	"errors"
	"fmt"
	"ramadan-meal-recommender/services/trackLog"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const reconnectDelay = 60 * time.Second

//Message is the amqp reply to publish
type Message struct {
	Queue         string
	ContentType   string
	CorrelationID string
	Body          []byte
}

//Connection is the connection created. conn, channel and closed are guarded
//by mu; Connect, Reconnect and the close watcher may run concurrently.
type Connection struct {
	name   string
	domain string
	Queues []string
	Err    chan error
	ApiErr chan error

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
}

var errNoChannel = errors.New("rabbitmq channel is not open")

var (
	poolMu         sync.Mutex
	connectionPool = make(map[string]*Connection)
)

//NewConnection returns the pooled connection for name, creating it on first use
func NewConnection(name, domain string, queues []string) *Connection {
	poolMu.Lock()
	defer poolMu.Unlock()
	if c, ok := connectionPool[name]; ok {
		return c
	}
	c := &Connection{
		name:   name,
		domain: domain,
		Queues: queues,
		Err:    make(chan error, 1),
		ApiErr: make(chan error, 1),
	}
	connectionPool[name] = c
	return c
}

//GetConnection returns the connection which was instantiated
func GetConnection(name string) *Connection {
	poolMu.Lock()
	defer poolMu.Unlock()
	return connectionPool[name]
}

func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *Connection) connectLocked() error {
	conn, err := amqp.Dial(c.domain)
	if err != nil {
		return fmt.Errorf("Error in creating rabbitmq connection with %s : %s", c.domain, err.Error())
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("Channel: %s", err)
	}

	c.conn = conn
	c.channel = channel
	c.closed = false
	go c.watchClose(conn)
	return nil
}

func (c *Connection) watchClose(conn *amqp.Connection) {
	<-conn.NotifyClose(make(chan *amqp.Error, 1)) //Listen to NotifyClose
	c.mu.Lock()
	current := c.conn == conn
	if current {
		c.closed = true
	}
	c.mu.Unlock()
	if current {
		notify(c.Err, errors.New("Connection Closed"))
		notify(c.ApiErr, errors.New("Api detect Connection Closed"))
	}
}

func notify(ch chan error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// Connected reports whether an open channel is available.
func (c *Connection) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil && c.channel != nil && !c.closed
}

func (c *Connection) openChannel() (*amqp.Channel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.channel == nil || c.closed {
		return nil, errNoChannel
	}
	return c.channel, nil
}

func (c *Connection) BindQueue() error {
	channel, err := c.openChannel()
	if err != nil {
		return err
	}
	return c.declare(channel)
}

func (c *Connection) declare(channel *amqp.Channel) error {
	for _, q := range c.Queues {
		if _, err := channel.QueueDeclare(q, false, false, false, false, nil); err != nil {
			return fmt.Errorf("error in declaring the queue %s", err)
		}
	}
	return nil
}

//Reconnect reconnects the connection. A caller that finds a live connection,
//because another goroutine already reconnected, leaves it in place.
func (c *Connection) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil && c.channel != nil && !c.closed {
		return nil
	}
	if err := c.connectLocked(); err != nil {
		return err
	}
	return c.declare(c.channel)
}

func (c *Connection) Consume() (map[string]<-chan amqp.Delivery, error) {
	channel, err := c.openChannel()
	if err != nil {
		return nil, err
	}
	m := make(map[string]<-chan amqp.Delivery)
	for _, q := range c.Queues {
		deliveries, err := channel.Consume(q, "", true, false, false, false, nil)
		if err != nil {
			return nil, err
		}
		m[q] = deliveries
	}
	return m, nil
}

// InspectQueue reports the broker's view of queue q.
func (c *Connection) InspectQueue(q string) (amqp.Queue, error) {
	channel, err := c.openChannel()
	if err != nil {
		return amqp.Queue{}, err
	}
	return channel.QueueInspect(q)
}

// Publish sends a message straight to a queue through the default exchange.
func (c *Connection) Publish(m Message) error {
	channel, err := c.openChannel()
	if err != nil {
		return err
	}
	return channel.Publish("", m.Queue, false, false, amqp.Publishing{
		ContentType:   m.ContentType,
		CorrelationId: m.CorrelationID,
		Body:          m.Body,
	})
}

func (c *Connection) HandleConsumedDeliveries(q string, delivery <-chan amqp.Delivery, fn func(*Connection, string, <-chan amqp.Delivery)) {
	trackLog.Info(fmt.Sprintf("[HandleConsumedDeliveries] Queue[%s] listening", q), true)
	for {
		go fn(c, q, delivery)
		if err := <-c.Err; err != nil {
			for {
				if err := c.Reconnect(); err != nil {
					trackLog.Error(err.Error(), true)
				}

				deliveries, err := c.Consume()
				if err != nil {
					time.Sleep(reconnectDelay)
					trackLog.Info("try again", false)
				} else {
					trackLog.Info("try ok", false)
					delivery = deliveries[q]
					break
				}
			}
		}
	}
}
