package kube

import (
	"context"
	"errors"
	"fmt"

	"github.com/satchelworks/satchelops/internal/logging"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	unstructured "k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
)

// DeleteResourceTarget describes a collection of resources to delete.
// Keep this type small and explicit to avoid accidental broad deletions.
type DeleteResourceTarget struct {
	// GVR is the resource to delete, e.g. {Group: "", Version: "v1", Resource: "pods"}.
	GVR schema.GroupVersionResource
	// Namespaced indicates whether the resource is namespaced.
	Namespaced bool
	// Kind is optional and used only for logs or error messages.
	Kind string
}

// DeleteBySelectorOptions controls deletion behavior for DeleteByLabelSelector.
type DeleteBySelectorOptions struct {
	// Propagation selects the deletion propagation policy. Defaults to Background.
	Propagation metav1.DeletionPropagation
	// IgnoreErrors continues deletion across resource kinds when errors occur.
	IgnoreErrors bool
}

func (o *DeleteBySelectorOptions) defaults() {
	if o.Propagation == "" {
		o.Propagation = metav1.DeletePropagationBackground
	}
}

// DeleteByLabelSelector deletes resources matching labelSelector across the provided targets.
// Namespaced targets are listed in the given namespace, others cluster-wide.
// Returns the count of successfully deleted resources and a joined error if any.
func (c *Client) DeleteByLabelSelector(ctx context.Context, namespace string, targets []DeleteResourceTarget, labelSelector string, opts *DeleteBySelectorOptions) (int, error) {
	if c == nil || c.RESTConfig == nil {
		return 0, fmt.Errorf("kube client is not initialized")
	}
	if opts == nil {
		opts = &DeleteBySelectorOptions{IgnoreErrors: true}
	}
	opts.defaults()

	dy, err := dynamic.NewForConfig(c.RESTConfig)
	if err != nil {
		return 0, fmt.Errorf("create dynamic client: %w", err)
	}

	var deleted int
	var errs []error

	for _, t := range targets {
		kind := t.Kind
		if kind == "" {
			kind = t.GVR.Resource
		}

		var list *unstructured.UnstructuredList
		if t.Namespaced {
			list, err = dy.Resource(t.GVR).Namespace(namespace).List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
		} else {
			list, err = dy.Resource(t.GVR).List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("list %s failed: %w", kind, err))
			if !opts.IgnoreErrors {
				return deleted, errors.Join(errs...)
			}
			continue
		}

		for _, it := range list.Items {
			name := it.GetName()
			delOpts := metav1.DeleteOptions{PropagationPolicy: &opts.Propagation}
			ns := ""
			if t.Namespaced {
				ns = namespace
			}
			logger := logging.FromContext(ctx).With("ns", ns, "kind", kind, "name", name)
			if t.Namespaced {
				err = dy.Resource(t.GVR).Namespace(namespace).Delete(ctx, name, delOpts)
			} else {
				err = dy.Resource(t.GVR).Delete(ctx, name, delOpts)
			}
			if err != nil {
				logger.Warn(ctx, "delete resource failed", "err", err)
				errs = append(errs, fmt.Errorf("delete %s %s failed: %w", t.GVR.Resource, name, err))
				if !opts.IgnoreErrors {
					return deleted, errors.Join(errs...)
				}
				continue
			}
			logger.Info(ctx, "deleted resource")
			deleted++
		}
	}

	if len(errs) > 0 {
		return deleted, errors.Join(errs...)
	}
	return deleted, nil
}

// StorageDeleteTargets returns the namespaced resource kinds created for
// async storage, in teardown order. Claims are not included; pass
// includeClaims=true to purge stored data as well.
func StorageDeleteTargets(includeClaims bool) []DeleteResourceTarget {
	targets := []DeleteResourceTarget{
		{GVR: schema.GroupVersionResource{Group: "", Version: "v1", Resource: "services"}, Namespaced: true, Kind: "Service"},
		{GVR: schema.GroupVersionResource{Group: "", Version: "v1", Resource: "pods"}, Namespaced: true, Kind: "Pod"},
		{GVR: schema.GroupVersionResource{Group: "", Version: "v1", Resource: "configmaps"}, Namespaced: true, Kind: "ConfigMap"},
	}
	if includeClaims {
		targets = append(targets, DeleteResourceTarget{GVR: schema.GroupVersionResource{Group: "", Version: "v1", Resource: "persistentvolumeclaims"}, Namespaced: true, Kind: "PVC"})
	}
	return targets
}
