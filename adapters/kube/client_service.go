package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// EnsureService creates svc unless a service with the same name already
// exists in its namespace (idempotent). Reports whether this call created
// the service.
func (c *Client) EnsureService(ctx context.Context, svc *corev1.Service) (bool, error) {
	if c == nil || c.Clientset == nil {
		return false, fmt.Errorf("kube client is not initialized")
	}
	if svc == nil || svc.Namespace == "" || svc.Name == "" {
		return false, fmt.Errorf("service namespace and name are required")
	}

	_, err := c.Clientset.CoreV1().Services(svc.Namespace).Get(ctx, svc.Name, metav1.GetOptions{})
	if err == nil {
		return false, nil
	}
	if !apierrors.IsNotFound(err) {
		return false, fmt.Errorf("get service %s/%s: %w", svc.Namespace, svc.Name, err)
	}

	_, err = c.Clientset.CoreV1().Services(svc.Namespace).Create(ctx, svc, metav1.CreateOptions{})
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return false, nil
		}
		return false, fmt.Errorf("create service %s/%s: %w", svc.Namespace, svc.Name, err)
	}
	return true, nil
}

// GetService fetches a service, reporting found=false when absent.
func (c *Client) GetService(ctx context.Context, namespace, name string) (*corev1.Service, bool, error) {
	if c == nil || c.Clientset == nil {
		return nil, false, fmt.Errorf("kube client is not initialized")
	}
	svc, err := c.Clientset.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get service %s/%s: %w", namespace, name, err)
	}
	return svc, true, nil
}
