package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// EnsureConfigMap creates cm unless a config map with the same name already
// exists in its namespace (idempotent). Reports whether this call created
// the config map.
func (c *Client) EnsureConfigMap(ctx context.Context, cm *corev1.ConfigMap) (bool, error) {
	if c == nil || c.Clientset == nil {
		return false, fmt.Errorf("kube client is not initialized")
	}
	if cm == nil || cm.Namespace == "" || cm.Name == "" {
		return false, fmt.Errorf("configmap namespace and name are required")
	}

	_, err := c.Clientset.CoreV1().ConfigMaps(cm.Namespace).Get(ctx, cm.Name, metav1.GetOptions{})
	if err == nil {
		return false, nil
	}
	if !apierrors.IsNotFound(err) {
		return false, fmt.Errorf("get configmap %s/%s: %w", cm.Namespace, cm.Name, err)
	}

	_, err = c.Clientset.CoreV1().ConfigMaps(cm.Namespace).Create(ctx, cm, metav1.CreateOptions{})
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return false, nil
		}
		return false, fmt.Errorf("create configmap %s/%s: %w", cm.Namespace, cm.Name, err)
	}
	return true, nil
}

// ConfigMapExists reports whether the named config map exists.
func (c *Client) ConfigMapExists(ctx context.Context, namespace, name string) (bool, error) {
	_, found, err := c.GetConfigMap(ctx, namespace, name)
	return found, err
}

// GetConfigMap fetches a config map, reporting found=false when absent.
func (c *Client) GetConfigMap(ctx context.Context, namespace, name string) (*corev1.ConfigMap, bool, error) {
	if c == nil || c.Clientset == nil {
		return nil, false, fmt.Errorf("kube client is not initialized")
	}
	cm, err := c.Clientset.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get configmap %s/%s: %w", namespace, name, err)
	}
	return cm, true, nil
}
