package health

type Service interface {
}

type Impl struct {
}
