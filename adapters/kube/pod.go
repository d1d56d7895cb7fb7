package kube

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	corev1 "k8s.io/api/core/v1"
)

// PodLogInput defines parameters for fetching pod logs.
type PodLogInput struct {
	Namespace string
	Pod       string
	Container string
	Follow    bool
	TailLines *int64
	// Out receives the log bytes.
	Out io.Writer
}

// PodLog streams or prints logs from a specified pod.
func (c *Client) PodLog(ctx context.Context, in *PodLogInput) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	if in == nil || in.Namespace == "" || in.Pod == "" {
		return fmt.Errorf("namespace and pod name are required")
	}
	if in.Out == nil {
		return fmt.Errorf("output writer is required")
	}
	opts := &corev1.PodLogOptions{Container: in.Container, Follow: in.Follow}
	if in.TailLines != nil && *in.TailLines > 0 {
		opts.TailLines = in.TailLines
	}
	// Follow streams stay open for as long as the caller context lives; only
	// one-shot reads get a connection deadline.
	streamCtx := ctx
	if !in.Follow {
		connCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		streamCtx = connCtx
	}
	stream, err := c.Clientset.CoreV1().Pods(in.Namespace).GetLogs(in.Pod, opts).Stream(streamCtx)
	if err != nil {
		return fmt.Errorf("get logs stream: %w", err)
	}
	defer stream.Close()
	if in.Follow {
		reader := bufio.NewReader(stream)
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			line, e := reader.ReadBytes('\n')
			if len(line) > 0 {
				_, _ = in.Out.Write(line)
			}
			if e != nil {
				if e == io.EOF {
					return nil
				}
				return fmt.Errorf("read logs: %w", e)
			}
		}
	}
	if _, err := io.Copy(in.Out, stream); err != nil {
		return fmt.Errorf("copy logs: %w", err)
	}
	return nil
}
