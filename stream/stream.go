package stream

import (
	"dyzs/imgbridge/logger"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	registryLock sync.RWMutex
	emitter_map  = make(map[string]Emitter)
	handler_map  = make(map[string]Handler)
)

func RegistEmitter(name string, e Emitter) {
	registryLock.Lock()
	emitter_map[name] = e
	registryLock.Unlock()
}
func RegistHandler(name string, h Handler) {
	registryLock.Lock()
	handler_map[name] = h
	registryLock.Unlock()
}

func GetEmitter(name string) (emitter Emitter, exsit bool) {
	registryLock.RLock()
	defer registryLock.RUnlock()
	a, b := emitter_map[name]
	return a, b
}

func GetHandler(name string) (handler Handler, exsit bool) {
	registryLock.RLock()
	defer registryLock.RUnlock()
	a, b := handler_map[name]
	return a, b
}

//已注册的节点名，用于启动日志
func Registered() (emitters []string, handlers []string) {
	registryLock.RLock()
	defer registryLock.RUnlock()
	for k := range emitter_map {
		emitters = append(emitters, k)
	}
	for k := range handler_map {
		handlers = append(handlers, k)
	}
	sort.Strings(emitters)
	sort.Strings(handlers)
	return
}

//数据源，Init 时拿到 emit 回调，把数据推入流程
type Emitter interface {
	Init(func(interface{})) error
	Close() error
}

//处理环节，处理完调用 next 交给下一环节；不调用 next 则流程在此结束
type Handler interface {
	Init(interface{}) error
	Handle(interface{}, func(interface{}))
	Close() error
}

type Stream struct {
	inited   bool
	running  bool
	emitter  Emitter
	handlers []Handler
}

func (s *Stream) linkHandle(index int, data interface{}) {
	if len(s.handlers) > index {
		h := s.handlers[index]
		h.Handle(data, func(ndata interface{}) {
			s.linkHandle(index+1, ndata)
		})
	}
}

//flow 第一个为 Emitter 名称，其余为 Handler 名称
func Build(flow []string) (s *Stream, err error) {
	if len(flow) == 0 {
		return nil, errors.New("未定义流程处理环节")
	}
	var emitter Emitter
	var handlers = make([]Handler, 0)

	for i, name := range flow {
		if i == 0 {
			e, ok := GetEmitter(name)
			if !ok {
				return nil, errors.New("未注册的Emitter:" + name)
			}
			emitter = e
		} else {
			h, ok := GetHandler(name)
			if !ok {
				return nil, errors.New("未注册的Handler:" + name)
			}
			handlers = append(handlers, h)
		}
	}

	myStream := New(emitter)
	for i := 0; i < len(handlers); i++ {
		myStream.Pipe(handlers[i])
	}
	return myStream, nil
}

func New(emitter Emitter) *Stream {
	s := &Stream{}
	s.handlers = make([]Handler, 0)
	s.emitter = emitter
	return s
}

func (s *Stream) Pipe(h Handler) *Stream {
	s.handlers = append(s.handlers, h)
	return s
}

func (s *Stream) Init() error {
	var err error
	s.inited = false
	for _, h := range s.handlers {
		err = h.Init(nil)
		if err != nil {
			break
		}
	}
	if err != nil {
		logger.LOG_ERROR("处理流程初始化异常,启动失败！：", err)
	} else {
		s.inited = true
	}
	return err
}

//同步执行一轮处理
func (s *Stream) Emit(data interface{}) {
	start := time.Now()
	s.linkHandle(0, data)
	logger.LOG_DEBUG("单轮耗时：", time.Since(start))
}

func (s *Stream) Run() error {
	if !s.inited {
		return errors.New("处理流程未初始化")
	}
	if s.emitter == nil {
		return errors.New("未定义Emitter")
	}
	err := s.emitter.Init(s.Emit)
	if err != nil {
		logger.LOG_ERROR("采集器初始化异常,启动失败！：", err)
		return err
	}
	s.running = true
	return nil
}

func (s *Stream) Running() bool {
	return s.running
}

func (s *Stream) Close() {
	var err error
	if s.emitter != nil {
		err = s.emitter.Close()
	}
	if err != nil {
		logger.LOG_WARN("关闭stream异常：", err)
	}
	for _, h := range s.handlers {
		err = h.Close()
		if err != nil {
			logger.LOG_WARN("关闭stream异常：", err)
		}
	}
	s.running = false
}

type EmitterWrapper struct {
	InitFunc  func(func(interface{})) error
	CloseFunc func() error
}

func (ew *EmitterWrapper) Init(emit func(interface{})) error {
	return ew.InitFunc(emit)
}
func (ew *EmitterWrapper) Close() error {
	if ew.CloseFunc == nil {
		return nil
	}
	return ew.CloseFunc()
}

type HandlerWrapper struct {
	InitFunc   func(interface{}) error
	HandleFunc func(interface{}, func(interface{}))
	CloseFunc  func() error
}

func (ew *HandlerWrapper) Init(config interface{}) error {
	if ew.InitFunc == nil {
		return nil
	}
	return ew.InitFunc(config)
}
func (ew *HandlerWrapper) Handle(data interface{}, next func(interface{})) {
	ew.HandleFunc(data, next)
}
func (ew *HandlerWrapper) Close() error {
	if ew.CloseFunc == nil {
		return nil
	}
	return ew.CloseFunc()
}
