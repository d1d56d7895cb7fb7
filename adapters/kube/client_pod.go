package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// EnsurePod creates pod unless a pod with the same name already exists in
// its namespace (idempotent). Reports whether this call created the pod.
// Existing pods are never mutated; pod specs are mostly immutable anyway.
func (c *Client) EnsurePod(ctx context.Context, pod *corev1.Pod) (bool, error) {
	if c == nil || c.Clientset == nil {
		return false, fmt.Errorf("kube client is not initialized")
	}
	if pod == nil || pod.Namespace == "" || pod.Name == "" {
		return false, fmt.Errorf("pod namespace and name are required")
	}

	_, err := c.Clientset.CoreV1().Pods(pod.Namespace).Get(ctx, pod.Name, metav1.GetOptions{})
	if err == nil {
		return false, nil
	}
	if !apierrors.IsNotFound(err) {
		return false, fmt.Errorf("get pod %s/%s: %w", pod.Namespace, pod.Name, err)
	}

	_, err = c.Clientset.CoreV1().Pods(pod.Namespace).Create(ctx, pod, metav1.CreateOptions{})
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return false, nil
		}
		return false, fmt.Errorf("create pod %s/%s: %w", pod.Namespace, pod.Name, err)
	}
	return true, nil
}

// GetPod fetches a pod, reporting found=false when absent.
func (c *Client) GetPod(ctx context.Context, namespace, name string) (*corev1.Pod, bool, error) {
	if c == nil || c.Clientset == nil {
		return nil, false, fmt.Errorf("kube client is not initialized")
	}
	pod, err := c.Clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get pod %s/%s: %w", namespace, name, err)
	}
	return pod, true, nil
}
