package pipeline

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-lazypipe/pkg/pipeline/model"
)

// execute queues the terminal step and replays the whole plan. The plan is
// detached before the replay starts.
func (p *Pipeline) execute(kind model.StepKind, build func(info stepDetails) step) (any, error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}

	p.queue(kind, build)
	plan := p.plan
	p.plan = nil

	if p.source.seq == nil {
		return nil, ErrInputMustBeSet
	}

	return p.replay(plan[:len(plan)-1], plan[len(plan)-1])
}

func (p *Pipeline) replay(chain []step, sink step) (any, error) {
	startTime := time.Now()
	fail := &failure{}

	for _, opt := range p.opts {
		err := opt.Start()
		if err != nil {
			return nil, errors.Wrap(err, "unable to start pipeline option")
		}
	}

	current := p.source
	parent := model.StartStep
	for _, st := range chain {
		info := st.details()
		err := p.prepareStep(parent, info)
		if err != nil {
			return nil, err
		}
		next, err := apply(fail, st, current)
		if err != nil {
			return nil, errors.Wrap(err, info.Name)
		}
		current = p.observe(fail, parent, info, next)
		parent = info
	}

	sinkInfo := sink.details()
	for _, opt := range p.opts {
		err := opt.PrepareSink(parent, sinkInfo)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before sink function")
		}
	}

	out, err := settle(fail, sink, current)
	if err != nil {
		return nil, err
	}

	for _, opt := range p.opts {
		err := opt.AfterSink(sinkInfo, time.Since(startTime))
		if err != nil {
			return nil, errors.Wrap(err, "unable to run after sink function")
		}
	}

	err = p.finishRun()
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (p *Pipeline) prepareStep(parent, info *model.StepInfo) error {
	for _, opt := range p.opts {
		err := opt.PrepareStep(parent, info)
		if err != nil {
			return errors.Wrap(err, "unable to run before step function")
		}
	}

	return nil
}

// observe reports every element yielded by a step to the options. The sequence is
// returned untouched when there is no option.
func (p *Pipeline) observe(fail *failure, parent, info *model.StepInfo, in Source) Source {
	if len(p.opts) == 0 {
		return in
	}

	return Source{
		size: in.size,
		seq: func(yield func(any) bool) {
			start := time.Now()
			for x := range in.All() {
				elapsed := time.Since(start)
				for _, opt := range p.opts {
					err := opt.OnStepOutput(parent, info, elapsed)
					if err != nil {
						fail.fail(errors.Wrap(err, "unable to run step output function"))

						return
					}
				}
				if !yield(x) {
					return
				}
				start = time.Now()
			}
		},
	}
}

// finishRun runs the Finish hook of every option concurrently.
func (p *Pipeline) finishRun() error {
	errGrp := errgroup.Group{}
	for _, opt := range p.opts {
		errGrp.Go(func() error {
			return errors.Wrap(opt.Finish(), "unable to finish pipeline option")
		})
	}

	return errGrp.Wait()
}
