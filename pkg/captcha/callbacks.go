package captcha

// Callbacks 验证码向宿主报告结果的回调
// 任意字段可以为 nil
type Callbacks struct {
	OnSuccess func()
	OnFailure func()
	OnClose   func()
}

// onceCallbacks 保证每个回调在一个验证码实例的生命周期内最多触发一次
type onceCallbacks struct {
	callbacks Callbacks
	success   bool
	failure   bool
	close     bool
}

func newOnceCallbacks(callbacks Callbacks) *onceCallbacks {
	return &onceCallbacks{callbacks: callbacks}
}

func (o *onceCallbacks) fireSuccess() {
	if o.success {
		return
	}
	o.success = true
	if o.callbacks.OnSuccess != nil {
		o.callbacks.OnSuccess()
	}
}

func (o *onceCallbacks) fireFailure() {
	if o.failure {
		return
	}
	o.failure = true
	if o.callbacks.OnFailure != nil {
		o.callbacks.OnFailure()
	}
}

func (o *onceCallbacks) fireClose() {
	if o.close {
		return
	}
	o.close = true
	if o.callbacks.OnClose != nil {
		o.callbacks.OnClose()
	}
}
