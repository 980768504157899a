package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// HttpRequest sends data as JSON and returns the response body. Non-2xx
// responses are errors.
func HttpRequest(method, url string, header map[string]string, data interface{}) ([]byte, error) {

	var requestBody []byte
	var err error
	var req *http.Request

	// 序列化參數
	if data != nil {
		if requestBody, err = json.Marshal(data); err != nil {
			return nil, err
		}
		if req, err = http.NewRequest(method, url, bytes.NewBuffer(requestBody)); err != nil {
			return nil, err
		}
	} else {
		if req, err = http.NewRequest(method, url, nil); err != nil {
			return nil, err
		}
	}

	req.Header.Set("Content-Type", "application/json")
	for key, element := range header {
		req.Header.Set(key, element)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
	}
	return body, nil
}
