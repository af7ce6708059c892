package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// SourceStatus 单个数据源的状态
type SourceStatus string

const (
	StatusPending SourceStatus = "pending"
	StatusDone    SourceStatus = "done"
	StatusSkipped SourceStatus = "skipped" // 可选源失败，继续执行
)

// SourceState 数据源进度
type SourceState struct {
	Status SourceStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

// analysisState 整个分析流程的状态，每次变更整体推送
type analysisState struct {
	Status        string                  `json:"status"` // analyzing/completed/error
	Overall       int                     `json:"overall"`
	CurrentAction string                  `json:"current_action"`
	Sources       map[string]*SourceState `json:"sources,omitempty"`
	Profile       interface{}             `json:"profile,omitempty"`
	Error         string                  `json:"error,omitempty"`
}

// Writer 分析流程的SSE写入器
type Writer struct {
	w         http.ResponseWriter
	flusher   http.Flusher
	mu        sync.Mutex
	state     analysisState
	stopped   bool
	stopHeart chan struct{}
}

// NewWriter 创建SSE写入器并启动心跳
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	writer := &Writer{
		w:       w,
		flusher: flusher,
		state: analysisState{
			Status:  "analyzing",
			Sources: make(map[string]*SourceState),
		},
		stopHeart: make(chan struct{}),
	}

	// 启动心跳
	go writer.heartbeat()

	return writer, nil
}

// heartbeat 定期发送心跳保持连接
func (s *Writer) heartbeat() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.writeHeartbeat()
		case <-s.stopHeart:
			return
		}
	}
}

func (s *Writer) writeHeartbeat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// StopHeartbeat之后handler可能已返回，ResponseWriter不能再写
	if s.stopped {
		return
	}

	heartbeat := map[string]interface{}{
		"status":         "heartbeat",
		"overall":        s.state.Overall,
		"current_action": s.state.CurrentAction,
	}
	data, _ := json.Marshal(heartbeat)
	fmt.Fprintf(s.w, "data: %s\n\n", data)
	s.flusher.Flush()
}

// StopHeartbeat 停止心跳，返回后不会再有心跳写入
func (s *Writer) StopHeartbeat() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	close(s.stopHeart)
}

func (s *Writer) send() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.w, "data: %s\n\n", data)
	if err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// SetAction 更新当前动作和进度并发送
// 进度只增不减
func (s *Writer) SetAction(progress int, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if progress > s.state.Overall {
		s.state.Overall = progress
	}
	s.state.CurrentAction = action
	return s.send()
}

// SourcePending 标记数据源开始处理
func (s *Writer) SourcePending(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Sources[name] = &SourceState{Status: StatusPending}
	return s.send()
}

// SourceDone 标记数据源处理完成
func (s *Writer) SourceDone(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Sources[name] = &SourceState{Status: StatusDone}
	return s.send()
}

// SourceSkipped 可选数据源失败被跳过，分析继续
func (s *Writer) SourceSkipped(name, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Sources[name] = &SourceState{Status: StatusSkipped, Error: errMsg}
	s.state.CurrentAction = fmt.Sprintf("Continuing without %s", name)
	return s.send()
}

// SendProfile 发送生成的档案并标记完成
func (s *Writer) SendProfile(profile interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = "completed"
	s.state.Overall = 100
	s.state.CurrentAction = "Analysis completed"
	s.state.Profile = profile
	return s.send()
}

// SendGlobalError 发送全局错误
func (s *Writer) SendGlobalError(errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = "error"
	s.state.CurrentAction = "Analysis failed"
	s.state.Error = errMsg
	return s.send()
}
