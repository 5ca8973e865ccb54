package optim

import (
	"github.com/softstack-ml/softstack/internal/nn"
	"github.com/softstack-ml/softstack/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD[T tensor.DType, B tensor.Backend] struct {
	params     []*nn.Parameter[T, B]
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter[T, B]][]T
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // learning rate (default 0.01)
	Momentum float64 // momentum factor in [0, 1) (default 0)
}

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD[T tensor.DType, B tensor.Backend](params []*nn.Parameter[T, B], config SGDConfig) *SGD[T, B] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD[T, B]{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter[T, B]][]T),
	}
}

// Step applies one gradient-descent update to every parameter that has
// a gradient in grads. Updates mutate the parameter data directly and
// never touch the gradient tape.
func (s *SGD[T, B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, param := range s.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}
		param.SetGrad(tensor.New[T, B](grad, param.Tensor().Backend()))

		data := param.Tensor().Data()
		gradData := tensor.DataOf[T](grad)
		if s.momentum == 0 {
			for i := range data {
				data[i] -= T(s.lr) * gradData[i]
			}
			continue
		}

		velocity, ok := s.velocities[param]
		if !ok {
			velocity = make([]T, len(data))
			s.velocities[param] = velocity
		}
		for i := range data {
			velocity[i] = T(s.momentum)*velocity[i] + gradData[i]
			data[i] -= T(s.lr) * velocity[i]
		}
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD[T, B]) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD[T, B]) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate, for scheduling during training.
func (s *SGD[T, B]) SetLR(lr float64) {
	s.lr = lr
}
