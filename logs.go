package passageproxy

type invocationFailed struct {
	Function string `logevent:"function"`
	Reason   string `logevent:"reason"`
	Message  string `logevent:"message,default=invocation-failed"`
}

type backgroundInvocationFailed struct {
	Function string `logevent:"function"`
	Reason   string `logevent:"reason"`
	Message  string `logevent:"message,default=background-invocation-failed"`
}

type invalidGatewayResponse struct {
	Function string `logevent:"function"`
	Reason   string `logevent:"reason"`
	Message  string `logevent:"message,default=invalid-gateway-response"`
}
