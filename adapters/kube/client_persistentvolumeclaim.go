package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// EnsurePersistentVolumeClaim creates pvc unless a claim with the same name
// already exists in its namespace (idempotent). Reports whether this call
// created the claim.
func (c *Client) EnsurePersistentVolumeClaim(ctx context.Context, pvc *corev1.PersistentVolumeClaim) (bool, error) {
	if c == nil || c.Clientset == nil {
		return false, fmt.Errorf("kube client is not initialized")
	}
	if pvc == nil || pvc.Namespace == "" || pvc.Name == "" {
		return false, fmt.Errorf("persistentvolumeclaim namespace and name are required")
	}

	_, err := c.Clientset.CoreV1().PersistentVolumeClaims(pvc.Namespace).Get(ctx, pvc.Name, metav1.GetOptions{})
	if err == nil {
		return false, nil
	}
	if !apierrors.IsNotFound(err) {
		return false, fmt.Errorf("get persistentvolumeclaim %s/%s: %w", pvc.Namespace, pvc.Name, err)
	}

	_, err = c.Clientset.CoreV1().PersistentVolumeClaims(pvc.Namespace).Create(ctx, pvc, metav1.CreateOptions{})
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return false, nil
		}
		return false, fmt.Errorf("create persistentvolumeclaim %s/%s: %w", pvc.Namespace, pvc.Name, err)
	}
	return true, nil
}

// GetPersistentVolumeClaim fetches a claim, reporting found=false when absent.
func (c *Client) GetPersistentVolumeClaim(ctx context.Context, namespace, name string) (*corev1.PersistentVolumeClaim, bool, error) {
	if c == nil || c.Clientset == nil {
		return nil, false, fmt.Errorf("kube client is not initialized")
	}
	pvc, err := c.Clientset.CoreV1().PersistentVolumeClaims(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get persistentvolumeclaim %s/%s: %w", namespace, name, err)
	}
	return pvc, true, nil
}
